package utils

// Configuration and repository file names used across the project.
const (
	// ConfigFileName is the name of the aipaste configuration file.
	ConfigFileName = ".aipaste.yaml"
	// GlobalConfigDirectoryName is the directory under the user home that holds global configuration.
	GlobalConfigDirectoryName = ".aipaste"
	// GitIgnoreFileName is the name of the Git ignore file read at project root.
	GitIgnoreFileName = ".gitignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
)

// Messages used by the application entry point.
const (
	// LoggerInitializationFailedMessageFormat reports a failure to construct the application logger.
	LoggerInitializationFailedMessageFormat = "logger initialization failed: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command failures.
	ApplicationExecutionFailedMessage = "aipaste failed"
)
