package version

// Version is the engine version stamped into backtest summaries.
// Override at build time with
// -ldflags "-X github.com/rxtech-lab/argo-lab/internal/version.Version=v0.2.0".
// "main" marks a development build.
var Version = "v0.1.0"

func GetVersion() string {
	return Version
}
