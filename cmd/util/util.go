package util

import (
	"fmt"
	"os"
	"strings"

	"github.com/ValentinKolb/rKV/lib/backend"
	"github.com/ValentinKolb/rKV/lib/codec"
	"github.com/ValentinKolb/rKV/lib/store"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupStoreFlags adds the common store flags to a command
func SetupStoreFlags(cmd *cobra.Command) {
	key := "data-dir"
	cmd.PersistentFlags().String(key, defaultDataDir(), WrapString("Directory holding the persistent backends and the encryption key"))

	key = "kind"
	cmd.PersistentFlags().String(key, backend.KindPersistent.String(), WrapString(fmt.Sprintf("Backend kind to address (%s)", strings.Join(kindNames(), ", "))))

	key = "sync"
	cmd.PersistentFlags().Bool(key, false, WrapString("Flush writes to stable storage before returning"))

	key = "verbose"
	cmd.PersistentFlags().BoolP(key, "v", false, WrapString("Enable debug logging"))
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("rkv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetCodec creates a codec based on configuration
func GetCodec() (codec.ICodec, error) {
	switch viper.GetString("codec") {
	case "json":
		return codec.NewJSONCodec(), nil
	case "gob":
		return codec.NewGOBCodec(), nil
	default:
		return nil, fmt.Errorf("invalid codec %s", viper.GetString("codec"))
	}
}

// GetKind parses the configured backend kind
func GetKind() (backend.Kind, error) {
	return backend.ParseKind(viper.GetString("kind"))
}

// GetLogger creates a console logger honoring the verbose flag
func GetLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// OpenStore opens the store rooted at the configured data directory
func OpenStore() (store.IStore, error) {
	c, err := GetCodec()
	if err != nil {
		return nil, err
	}

	logger := GetLogger()
	return store.Open(viper.GetString("data-dir"), &store.Options{
		Codec:  c,
		Logger: &logger,
	})
}

// NewKey builds a byte-level key from the command line arguments and the
// configured kind and sync flags
func NewKey(name string) (store.Key, error) {
	kind, err := GetKind()
	if err != nil {
		return store.Key{}, err
	}

	var opts []store.KeyOption
	if viper.GetBool("sync") {
		opts = append(opts, store.WithSyncNow())
	}
	return store.NewKey[[]byte](name, kind, opts...).Key, nil
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home + "/.rkv"
	}
	return ".rkv"
}

func kindNames() []string {
	names := make([]string, 0, len(backend.AllKinds()))
	for _, kind := range backend.AllKinds() {
		names = append(names, kind.String())
	}
	return names
}
