// Package cmd implements the camshell command line interface.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"camshell/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "camshell",
	Short: "Asynchronous client for the gphoto2 interactive shell",
	Long: `Camshell drives a gphoto2 --shell subprocess: it detects readiness
from the shell prompt, serializes commands one at a time, and maintains
a typed local model of the camera configuration.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/camshell/config.yaml)")
	rootCmd.PersistentFlags().String("port", "", "camera port (e.g. usb:001,007)")
	rootCmd.PersistentFlags().String("binary", "", "gphoto2 binary to spawn")
	rootCmd.PersistentFlags().String("simulate", "", "YAML script to run against a simulated shell")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("shell.port", rootCmd.PersistentFlags().Lookup("port"))
	_ = viper.BindPFlag("shell.binary", rootCmd.PersistentFlags().Lookup("binary"))
	_ = viper.BindPFlag("shell.simulate", rootCmd.PersistentFlags().Lookup("simulate"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	config.SetupEnv()

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
