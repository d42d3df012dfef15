package holdlight

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dasdy/holdlight/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gitlab.com/greyxor/slogor"
)

var (
	cfgFile  string
	logLevel string
)

// Version is set at build time with -ldflags.
var Version = "dev"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "holdlight",
	Short: "Light up climbing holds on an LED wall",
	Long: `Holdlight drives an addressable LED strip mounted behind a climbing wall.
Holds are marked from a web page, shown on the wall, and saved as named boulders
so routes can be lit again later.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.holdlight.toml or ./.holdlight.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	addWallFlags(rootCmd.PersistentFlags())
}

func initConfig() {
	if cfgFile != "" {
		slog.Debug("Using config file from flag", "path", cfgFile)
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".holdlight" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("toml")
		viper.SetConfigName(".holdlight")
	}

	viper.SetEnvPrefix("holdlight")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			createExampleConfig()
		} else {
			slog.Error("Error reading config file", "error", err)
			os.Exit(1)
		}
	}

	slog.Debug("Config loaded", "path", viper.ConfigFileUsed())
}

const exampleConfig = `# holdlight configuration. Keys are flag names without dashes.
port = 8080
store = "boulders.yml"
settings = "settings.toml"

rows = 12
cols = 7
numleds = 100
states = "classic"

# blend or direct
compositor = "blend"

# memory, serial, artnet or ws281x
driver = "memory"
orientation = "vertical"
# The strip starts at the last LED row and column.
reverserows = true
reversecols = true

# Blend tints, added to the neighbour colour before averaging.
[[rowtints]]
offset = 0
shift = [24.0, 0.0, -24.0]

[[rowtints]]
offset = -1
shift = [-24.0, 0.0, 24.0]

[[coltints]]
offset = 0
shift = [0.0, 24.0, -24.0]

[[coltints]]
offset = -1
shift = [0.0, -24.0, 24.0]
`

func createExampleConfig() {
	configPath := "./.holdlight.toml"

	err := os.WriteFile(configPath, []byte(exampleConfig), 0o644)
	if err != nil {
		slog.Error("Error creating example config file", "error", err)
		os.Exit(1)
	}

	slog.Info("Example config file created", "path", configPath)
}

// NewLogger returns the coloured stderr logger with context attributes.
func NewLogger(level slog.Level) *slog.Logger {
	return slog.New(logging.ContextHandler{Handler: slogor.NewHandler(os.Stderr,
		slogor.SetLevel(level),
		slogor.SetTimeFormat(time.DateTime),
		slogor.ShowSource())})
}

func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", name, err)
	}

	return level, nil
}

func preRun(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, args)

	level, err := parseLevel(logLevel)
	if err != nil {
		return err
	}

	slog.SetDefault(NewLogger(level))

	return nil
}

// set values to the PFlag variables from config, if they are set. Priority is still given to explicitly provided CLI flags.
func bindFlags(cmd *cobra.Command, _ []string) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Since viper does case-insensitive comparisons, we only need to remove the hyphens.
		configName := strings.ReplaceAll(f.Name, "-", "")

		if !f.Changed && viper.IsSet(configName) {
			val := viper.Get(configName)

			err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val))
			if err != nil {
				slog.Error("Error setting flag from config", "flag", f.Name, "error", err)
				panic(err)
			}

			slog.Debug("Flag set from config", "flag", f.Name, "value", val)
		}
	})
}
