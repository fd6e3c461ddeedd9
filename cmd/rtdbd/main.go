// Command rtdbd runs the rtdb TCP server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Serdnad/rtdb/internal/log"
	"github.com/Serdnad/rtdb/server"
	"github.com/Serdnad/rtdb/storage"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rtdbd",
	Short: "rtdbd serves rtdb's statement protocol over TCP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		dataDir, _ := cmd.Flags().GetString("data-dir")

		s := server.New(server.Config{Addr: addr, DataDir: dataDir})

		return s.ListenAndServe()
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	rootCmd.Flags().String("addr", "127.0.0.1:4280", "Address to listen on")
	rootCmd.Flags().String("data-dir", storage.DefaultDataRoot, "Data directory")

	cobra.OnInitialize(initLogging)
}

func initLogging() {
	level, _ := rootCmd.PersistentFlags().GetString("log-level")
	jsonOutput, _ := rootCmd.PersistentFlags().GetBool("log-json")

	log.Init(log.Config{Level: log.Level(level), JSONOutput: jsonOutput})
}
