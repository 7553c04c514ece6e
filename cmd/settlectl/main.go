package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "settlectl",
		Short:         "Operate the rental settlement ledger",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "config/payments.env", "env file with service configuration")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.SetEnvPrefix("SETTLE")
	viper.AutomaticEnv()

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(payoutsCmd())
	rootCmd.AddCommand(depositCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
