package main

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	daemonDatadir = btcutil.AppDataDir("coinpursed", false)
	datadir       = btcutil.AppDataDir("coinpurse", false)
	statePath     = filepath.Join(datadir, "state.json")

	initialState = map[string]string{
		"rpcserver":     "localhost:18000",
		"no_tls":        strconv.FormatBool(false),
		"tls_cert_path": filepath.Join(daemonDatadir, "tls", "cert.pem"),
	}

	rootCmd = &cobra.Command{
		Use:   "coinpurse",
		Short: "CLI for coinpurse wallet",
		Long:  "This CLI lets you interact with a running coinpurse daemon",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if _, err := os.Stat(datadir); os.IsNotExist(err) {
				os.MkdirAll(datadir, os.ModeDir|0755)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       formatVersion(),
	}
)

func init() {
	rootCmd.AddCommand(
		configCmd, walletCmd, calcCmd, historyCmd, currenciesCmd, solveCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printErr(err)
		os.Exit(1)
	}
}
