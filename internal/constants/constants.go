package constants

// Tool identity constants.
const (
	// ToolName is the name of this tool.
	ToolName = "wsmove"

	// ConfigFileName is the default workspace manifest file name.
	ConfigFileName = "wsmove.config.yaml"

	// EnvVarPrefix is the prefix for environment variables read by viper.
	EnvVarPrefix = "WSMOVE"
)

// DefaultProjectDirectory is the subpath under a target project's source
// root a move lands in when neither --project-directory nor
// --derive-project-directory is given (spec.md §4.6 step 3).
const DefaultProjectDirectory = "lib"

// SourceExtensions lists the file extensions the scanner and rewriter
// operate on (spec.md §6 "File formats touched").
var SourceExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"}

// ResolvableExtensions lists extensions specifiers omit by convention;
// .mjs/.cjs are never stripped (spec.md §4.1).
var ResolvableExtensions = []string{".tsx", ".jsx", ".ts", ".js"}

// GlobMetaCharacters are rejected in non-glob path callsites (spec.md §4.1).
const GlobMetaCharacters = "[]*?()"
