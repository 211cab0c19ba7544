package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/freya-systems/freya-dashboard/internal/storage"
)

const (
	commandUseName              = "server"
	commandShortDescription     = "Run the Freya dashboard server"
	commandLongDescription      = "Launch the Freya administrative dashboard HTTP server"
	missingConfigurationMessage = "missing required configuration"
	loggerCreationErrorMessage  = "logger"

	flagNameApplicationAddress  = "app-addr"
	flagNameBackendBaseURL      = "backend-base-url"
	flagNameDatabasePath        = "db-path"
	flagNameSessionSecret       = "session-secret"
	flagNamePDFFontPath         = "pdf-font-path"
	flagNameBackendTimeout      = "backend-timeout-seconds"
	flagUsageApplicationAddress = "address for the HTTP server to listen on"
	flagUsageBackendBaseURL     = "base URL of the upstream Freya backend API"
	flagUsageDatabasePath       = "path of the local SQLite preferences database"
	flagUsageSessionSecret      = "secret used to sign session cookies"
	flagUsagePDFFontPath        = "path of a Japanese-capable TTF font for PDF export"
	flagUsageBackendTimeout     = "timeout in seconds for upstream backend calls"

	environmentKeyApplicationAddress = "APP_ADDR"
	environmentKeyBackendBaseURL     = "BACKEND_BASE_URL"
	environmentKeyDatabasePath       = "DB_PATH"
	environmentKeySessionSecret      = "SESSION_SECRET"
	environmentKeyPDFFontPath        = "PDF_FONT_PATH"
	environmentKeyBackendTimeout     = "BACKEND_TIMEOUT_SECONDS"

	defaultApplicationAddress = ":8080"
	defaultDatabasePath       = "freya-dashboard.db"
	defaultBackendTimeout     = 30

	unexpectedArgumentsMessage    = "unexpected command arguments"
	commandInitializationFailure  = "failed to configure command"
	flagNotDefinedMessage         = "flag %s not defined"
	environmentConfigurationError = "failed to apply environment configuration"
)

// ServerConfig captures configuration needed to run the server.
type ServerConfig struct {
	ApplicationAddress    string
	BackendBaseURL        string
	DatabasePath          string
	SessionSecret         string
	PDFFontPath           string
	BackendTimeoutSeconds int
}

// DatabaseOpener opens the local preferences database.
type DatabaseOpener func(storage.Config) (*gorm.DB, error)

// ServerApplication constructs and executes the server command.
type ServerApplication struct {
	configurationLoader *viper.Viper
	databaseOpener      DatabaseOpener
}

// NewServerApplication creates a ServerApplication with default dependencies.
func NewServerApplication() *ServerApplication {
	return &ServerApplication{
		configurationLoader: viper.New(),
		databaseOpener:      storage.OpenDatabase,
	}
}

// WithDatabaseOpener overrides the database opener dependency.
func (application *ServerApplication) WithDatabaseOpener(databaseOpener DatabaseOpener) *ServerApplication {
	application.databaseOpener = databaseOpener
	return application
}

// Command builds the Cobra command for the server.
func (application *ServerApplication) Command() (*cobra.Command, error) {
	rootCommand := &cobra.Command{
		Use:   commandUseName,
		Short: commandShortDescription,
		Long:  commandLongDescription,
		RunE:  application.runCommand,
	}

	if configurationErr := application.configureCommand(rootCommand); configurationErr != nil {
		return nil, configurationErr
	}

	return rootCommand, nil
}

func (application *ServerApplication) configureCommand(command *cobra.Command) error {
	application.configurationLoader.SetDefault(environmentKeyApplicationAddress, defaultApplicationAddress)
	application.configurationLoader.SetDefault(environmentKeyBackendBaseURL, "")
	application.configurationLoader.SetDefault(environmentKeyDatabasePath, defaultDatabasePath)
	application.configurationLoader.SetDefault(environmentKeySessionSecret, "")
	application.configurationLoader.SetDefault(environmentKeyPDFFontPath, "")
	application.configurationLoader.SetDefault(environmentKeyBackendTimeout, defaultBackendTimeout)
	application.configurationLoader.AutomaticEnv()

	commandFlags := command.Flags()
	commandFlags.String(flagNameApplicationAddress, defaultApplicationAddress, flagUsageApplicationAddress)
	commandFlags.String(flagNameBackendBaseURL, "", flagUsageBackendBaseURL)
	commandFlags.String(flagNameDatabasePath, defaultDatabasePath, flagUsageDatabasePath)
	commandFlags.String(flagNameSessionSecret, "", flagUsageSessionSecret)
	commandFlags.String(flagNamePDFFontPath, "", flagUsagePDFFontPath)
	commandFlags.Int(flagNameBackendTimeout, defaultBackendTimeout, flagUsageBackendTimeout)

	flagBindings := []struct {
		environmentKey string
		flagName       string
	}{
		{environmentKeyApplicationAddress, flagNameApplicationAddress},
		{environmentKeyBackendBaseURL, flagNameBackendBaseURL},
		{environmentKeyDatabasePath, flagNameDatabasePath},
		{environmentKeySessionSecret, flagNameSessionSecret},
		{environmentKeyPDFFontPath, flagNamePDFFontPath},
		{environmentKeyBackendTimeout, flagNameBackendTimeout},
	}
	for _, binding := range flagBindings {
		if bindErr := application.bindFlag(commandFlags, binding.environmentKey, binding.flagName); bindErr != nil {
			return bindErr
		}
		if environmentErr := application.applyEnvironmentConfiguration(commandFlags, binding.environmentKey, binding.flagName); environmentErr != nil {
			return environmentErr
		}
	}

	return nil
}

func (application *ServerApplication) bindFlag(flagSet *pflag.FlagSet, environmentKey string, flagName string) error {
	flag := flagSet.Lookup(flagName)
	if flag == nil {
		return fmt.Errorf(flagNotDefinedMessage, flagName)
	}

	if bindErr := application.configurationLoader.BindPFlag(environmentKey, flag); bindErr != nil {
		return bindErr
	}

	return nil
}

func (application *ServerApplication) applyEnvironmentConfiguration(flagSet *pflag.FlagSet, environmentKey string, flagName string) error {
	environmentValue, environmentFound := os.LookupEnv(environmentKey)
	if !environmentFound {
		return nil
	}

	if setErr := flagSet.Set(flagName, environmentValue); setErr != nil {
		return fmt.Errorf("%s: %w", environmentConfigurationError, setErr)
	}

	return nil
}

func (application *ServerApplication) runCommand(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return fmt.Errorf("%s: %s", unexpectedArgumentsMessage, strings.Join(arguments, " "))
	}

	serverConfig := ServerConfig{
		ApplicationAddress:    application.configurationLoader.GetString(environmentKeyApplicationAddress),
		BackendBaseURL:        strings.TrimSpace(application.configurationLoader.GetString(environmentKeyBackendBaseURL)),
		DatabasePath:          strings.TrimSpace(application.configurationLoader.GetString(environmentKeyDatabasePath)),
		SessionSecret:         strings.TrimSpace(application.configurationLoader.GetString(environmentKeySessionSecret)),
		PDFFontPath:           strings.TrimSpace(application.configurationLoader.GetString(environmentKeyPDFFontPath)),
		BackendTimeoutSeconds: application.configurationLoader.GetInt(environmentKeyBackendTimeout),
	}

	if validationErr := application.ensureRequiredConfiguration(serverConfig); validationErr != nil {
		return validationErr
	}

	logger, loggerErr := zap.NewProduction()
	if loggerErr != nil {
		return fmt.Errorf("%s: %w", loggerCreationErrorMessage, loggerErr)
	}
	defer func() {
		_ = logger.Sync()
	}()

	return runServer(serverConfig, application.databaseOpener, logger)
}

func (application *ServerApplication) ensureRequiredConfiguration(configuration ServerConfig) error {
	var missingParameters []string

	if configuration.BackendBaseURL == "" {
		missingParameters = append(missingParameters, environmentKeyBackendBaseURL)
	}
	if configuration.SessionSecret == "" {
		missingParameters = append(missingParameters, environmentKeySessionSecret)
	}
	if configuration.DatabasePath == "" {
		missingParameters = append(missingParameters, environmentKeyDatabasePath)
	}

	if len(missingParameters) > 0 {
		return fmt.Errorf("%s: %s", missingConfigurationMessage, strings.Join(missingParameters, ", "))
	}

	return nil
}

func main() {
	_ = godotenv.Load()

	application := NewServerApplication()
	rootCommand, commandErr := application.Command()
	if commandErr != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", commandInitializationFailure, commandErr)
		os.Exit(1)
	}

	if executeErr := rootCommand.Execute(); executeErr != nil {
		os.Exit(1)
	}
}

func backendTimeout(configuration ServerConfig) time.Duration {
	if configuration.BackendTimeoutSeconds <= 0 {
		return time.Duration(defaultBackendTimeout) * time.Second
	}
	return time.Duration(configuration.BackendTimeoutSeconds) * time.Second
}
