package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nemecec/rs485"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rs485",
	Short: "RS-485 half-duplex serial port tool",
	Long: `rs485 is a command-line tool for RS-485 half-duplex serial buses.

It lists and classifies serial ports, sends data through the
turnaround-safe write path with kernel or manual direction control, and
drives the RTS/DTR lines directly for debugging transceivers.`,
}

// Execute runs the root command. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.rs485.yaml)")
	rootCmd.PersistentFlags().Int("baud", 9600, "baud rate")
	rootCmd.PersistentFlags().String("mode", "auto", "direction control mode: off, auto, manual")
	rootCmd.PersistentFlags().String("pin", "rts", "control pin for manual toggling: rts, dtr")

	viper.BindPFlag("baud", rootCmd.PersistentFlags().Lookup("baud"))
	viper.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode"))
	viper.BindPFlag("pin", rootCmd.PersistentFlags().Lookup("pin"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".rs485")
	}

	viper.SetEnvPrefix("RS485")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// parseMode maps the flag value to a direction control mode.
func parseMode(mode string) (rs485.Mode, error) {
	switch strings.ToLower(mode) {
	case "off", "none", "disabled":
		return rs485.ModeDisabled, nil
	case "auto", "automatic":
		return rs485.ModeAutomatic, nil
	case "manual":
		return rs485.ModeManual, nil
	default:
		return 0, fmt.Errorf("invalid mode: %s (valid: off, auto, manual)", mode)
	}
}

// parsePin maps the flag value to a control pin.
func parsePin(pin string) (rs485.Pin, error) {
	switch strings.ToLower(pin) {
	case "rts":
		return rs485.PinRTS, nil
	case "dtr":
		return rs485.PinDTR, nil
	default:
		return 0, fmt.Errorf("invalid pin: %s (valid: rts, dtr)", pin)
	}
}

// parseSignalState parses a line level argument.
func parseSignalState(state string) (bool, error) {
	switch strings.ToLower(state) {
	case "high", "on", "true", "1":
		return true, nil
	case "low", "off", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid state: %s (valid: high, low, on, off, true, false, 1, 0)", state)
	}
}

func formatSignalState(state bool) string {
	if state {
		return "HIGH"
	}
	return "LOW"
}

// openFromFlags opens a controller using the persistent flag values.
func openFromFlags(portPath string) (*rs485.Controller, error) {
	mode, err := parseMode(viper.GetString("mode"))
	if err != nil {
		return nil, err
	}
	pin, err := parsePin(viper.GetString("pin"))
	if err != nil {
		return nil, err
	}

	return rs485.Open(portPath,
		rs485.WithBaudRate(viper.GetInt("baud")),
		rs485.WithMode(mode, pin),
	)
}
