package client

import (
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scicrunch/sckan-nli/internal/common/config"
	"github.com/scicrunch/sckan-nli/internal/common/sckanerrors"
	"github.com/scicrunch/sckan-nli/internal/export"
)

const (
	defaultConfigName = ".sckan-nli"
	dotEnvFile        = ".env"
)

func AddConnectionCommandlineArgs(rootCmd *cobra.Command, v *viper.Viper) {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.sckan-nli.yaml)")
	flags.String("endpoint", DefaultEndpoint, "Stardog server url")
	flags.String("database", DefaultDatabase, "Stardog database to query")
	flags.String("timeout", strconv.Itoa(int(DefaultTimeout.Seconds())), "connectivity pre-check timeout, in seconds or as a duration such as 30s")

	_ = v.BindPFlag("endpoint", flags.Lookup("endpoint"))
	_ = v.BindPFlag("database", flags.Lookup("database"))
	_ = v.BindPFlag("timeout", flags.Lookup("timeout"))

	_ = v.BindEnv("username", UsernameEnvVar)
	_ = v.BindEnv("password", PasswordEnvVar)
	_ = v.BindEnv("timeout", TimeoutEnvVar)
	_ = v.BindEnv("endpoint", "STARDOG_ENDPOINT")
	_ = v.BindEnv("database", "STARDOG_DATABASE")
}

// LoadCommandlineArgs loads a .env file from the working directory, if there is one, into the environment
// and then reads the config file. Without cfgFile, $HOME/.sckan-nli.yaml is used when it exists.
// Variables already set in the environment win over the .env file.
func LoadCommandlineArgs(v *viper.Viper, cfgFile string) error {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.WithStack(&sckanerrors.ErrInvalidArgument{
			Name:    dotEnvFile,
			Value:   dotEnvFile,
			Message: fmt.Sprintf("error reading %s: %s", dotEnvFile, err),
		})
	}

	if cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			return errors.WithStack(&sckanerrors.ErrInvalidArgument{
				Name:    "config",
				Value:   "$HOME",
				Message: fmt.Sprintf("error getting user home directory: %s", err),
			})
		}
		v.AddConfigPath(home)
		v.SetConfigName(defaultConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			// Only returned when looking for the default file. Users don't have to have one.
		default:
			return errors.WithStack(&sckanerrors.ErrInvalidArgument{
				Name:    "config",
				Value:   v.ConfigFileUsed(),
				Message: fmt.Sprintf("error reading config file: %s", err),
			})
		}
	}
	return nil
}

func ExtractCommandlineConnectionDetails(v *viper.Viper) *ConnectionDetails {
	return &ConnectionDetails{
		Endpoint: strings.TrimSpace(v.GetString("endpoint")),
		Database: strings.TrimSpace(v.GetString("database")),
		Username: v.GetString("username"),
		Password: v.GetString("password"),
		Timeout:  timeoutOrDefault(v.GetString("timeout")),
	}
}

// ExtractCommandlineQueries returns the steps listed under "queries" in the config file, or nil if there are none.
func ExtractCommandlineQueries(v *viper.Viper) ([]export.Step, error) {
	if !v.IsSet("queries") {
		return nil, nil
	}
	var steps []export.Step
	if err := v.UnmarshalKey("queries", &steps, config.CustomHooks...); err != nil {
		return nil, errors.WithStack(&sckanerrors.ErrInvalidArgument{
			Name:    "queries",
			Value:   v.ConfigFileUsed(),
			Message: err.Error(),
		})
	}
	return steps, nil
}

// ParseTimeout accepts a number of seconds, e.g. "10" or "2.5", or a Go duration such as "30s".
func ParseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if seconds, err := strconv.ParseFloat(s, 64); err == nil {
		if seconds <= 0 {
			return 0, errors.Errorf("timeout must be positive, got %s", s)
		}
		return time.Duration(seconds * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Errorf("invalid timeout %q", s)
	}
	if d <= 0 {
		return 0, errors.Errorf("timeout must be positive, got %s", s)
	}
	return d, nil
}

func timeoutOrDefault(s string) time.Duration {
	if s == "" {
		return DefaultTimeout
	}
	d, err := ParseTimeout(s)
	if err != nil {
		log.WithError(err).Warnf("Ignoring timeout setting, using %s", DefaultTimeout)
		return DefaultTimeout
	}
	return d
}
