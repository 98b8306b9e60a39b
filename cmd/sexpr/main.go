package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sexpr/internal/repl"
	"sexpr/internal/store"
	"sexpr/internal/util"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
)

var (
	// Version is the current version of the sexpr binary, set at build time.
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
	help      bool
	version   bool
	// logging
	logLevel string
	logFile  string
	// config vars
	configPath   string
	interactive  bool
	prompt       string
	historyDSN   string
	historyLimit int
	debugAST     string
	noColor      bool
)

func init() {
	flag.BoolVar(&help, "help", false, "Display help information and exit")
	flag.BoolVar(&help, "h", false, "Display help information and exit")
	flag.BoolVar(&version, "version", false, "Display version information and exit")
	flag.BoolVar(&version, "v", false, "Display version information and exit")
	flag.StringVar(&configPath, "config", "", "Path to a TOML configuration file")
	// repl config
	flag.BoolVar(&interactive, "i", false, "Start an interactive session")
	flag.StringVar(&prompt, "prompt", util.DefaultPrompt, "Prompt shown before each interactive read")
	flag.StringVar(&historyDSN, "history", "", "History store: memory, sqlite://path, mysql://dsn or postgres://url")
	flag.IntVar(&historyLimit, "history-limit", util.DefaultHistoryLimit, "Number of history lines to keep (0 keeps all)")
	flag.BoolVar(&noColor, "no-color", false, "Disable coloured error output")
	// parser config
	flag.StringVar(&debugAST, "debug-ast", "", "Print each parsed tree before evaluation: text or json")
	// log config
	flag.StringVar(&logLevel, "log-level", "error", "Log level: debug, info, warn, error")
	flag.StringVar(&logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if version {
		printVersion()
		return 0
	}

	if help {
		printHelp()
		return 0
	}

	config, err := loadConfiguration()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		return 2
	}

	// Creates a new Logger that uses a JSONHandler to write to the log writer
	loggerOptions := &slog.HandlerOptions{
		AddSource: false,
		Level:     logLevelFromString(config.LogLevel),
	}
	logWriter := configureLogWriter(config.LogFile)
	defaultLogger := slog.New(slog.NewJSONHandler(logWriter, loggerOptions))
	slog.SetDefault(defaultLogger)

	slog.Debug("configuration loaded",
		slog.String("version", config.Version),
		slog.Bool("interactive", config.Interactive),
		slog.String("file", config.File),
		slog.String("debugAST", config.DebugAST))

	if err := execute(context.Background(), config); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		return 1
	}
	return 0
}

// loadConfiguration layers defaults, the optional TOML file, and the flags
// that were set explicitly.
func loadConfiguration() (util.Configuration, error) {
	config := util.DefaultConfiguration(os.Getenv("SEXPR_HOME"))
	config.Version = Version
	config.BuildDate = BuildDate
	config.Commit = Commit

	if configPath != "" {
		if err := util.LoadConfigFile(configPath, &config); err != nil {
			return config, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			config.Interactive = interactive
		case "prompt":
			config.Prompt = prompt
		case "history":
			config.HistoryDSN = historyDSN
		case "history-limit":
			config.HistoryLimit = historyLimit
		case "debug-ast":
			config.DebugAST = debugAST
		case "no-color":
			config.Color = !noColor
		case "log-level":
			config.LogLevel = logLevel
		case "log-file":
			config.LogFile = logFile
		}
	})
	if flag.NArg() > 0 {
		config.File = flag.Arg(0)
	}
	if config.Interactive {
		config.File = ""
	}

	return config, config.Validate()
}

func execute(ctx context.Context, config util.Configuration) (err error) {
	opts := repl.Options{
		Prompt:       config.Prompt,
		DebugAST:     config.DebugAST,
		Color:        config.Color && !color.NoColor,
		HistoryLimit: config.HistoryLimit,
	}

	if !config.Interactive {
		session := repl.New(os.Stdout, nil, opts)
		defer closeSession(session, &err)
		return session.RunFile(config.File)
	}

	st, err := store.Open(ctx, config.HistoryDSN)
	if err != nil {
		slog.Warn("history store unavailable, keeping history in memory",
			slog.String("dsn", config.HistoryDSN),
			slog.Any("error", err))
		st = store.NewMemory()
	}
	session := repl.New(os.Stdout, st, opts)
	defer closeSession(session, &err)

	var in repl.LineReader
	if repl.IsTerminal(os.Stdin) && repl.IsTerminal(os.Stdout) {
		in = repl.NewTerminalReader(session.Complete)
	} else {
		in = repl.NewBufferedReader(os.Stdin, os.Stdout)
	}
	return session.RunInteractive(ctx, in)
}

func closeSession(session *repl.Repl, err *error) {
	if cerr := session.Close(); cerr != nil {
		*err = multierror.Append(*err, cerr)
	}
}

func configureLogWriter(logFile string) *os.File {
	var logWriter *os.File
	var err error
	if logFile != "" {
		// Create parent directories if they don't exist
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log directory for '%s': %v; falling back to stderr\n", logFile, err)
			return os.Stderr
		}
		logWriter, err = os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file '%s': %v; falling back to stderr\n", logFile, err)
			logWriter = os.Stderr
		}
	} else {
		logWriter = os.Stderr
	}
	return logWriter
}

func printVersion() {
	fmt.Printf("sexpr version 'v%s' %s %s\n", Version, BuildDate, Commit)
}

func printHelp() {
	fmt.Printf(`Usage: sexpr [options] [filename]

Options:
  -i                   Start an interactive session. Type 'exit' or Ctrl-D to quit.
  -config <path>       Read settings from a TOML file. Flags override file values.
  -prompt <text>       Prompt shown before each interactive read. Default is '%s'.
  -history <dsn>       History store: memory, sqlite://path, mysql://dsn, postgres://url.
                       Default is sqlite://$SEXPR_HOME/%s, or memory when SEXPR_HOME is unset.
  -history-limit <n>   Number of history lines to keep. Default is %d.
  -debug-ast <mode>    Print each parsed tree before evaluation: text or json.
  -no-color            Disable coloured error output.
  -help                Display this help information and exit.
  -version             Display version information and exit.
  -log-level <level>   Set the log level: debug, info, warn, error. Default is 'error'.
  -log-file <path>     Specify a log file to write logs. Default is stderr.

Details:
A small s-expression language. Files are evaluated as one unit and the value
of the last expression is printed; a failing evaluation exits with status 1.

Examples:
  sexpr -i                          Start an interactive session
  sexpr -i -history memory          Interactive session without saved history
  sexpr -debug-ast=text prog.sx     Show the parse tree, then evaluate prog.sx

Version Information:
  Version:    %s
  Build Date: %s
  Commit:     %s
`, util.DefaultPrompt, util.HistoryFileName, util.DefaultHistoryLimit, Version, BuildDate, Commit)
}

func logLevelFromString(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelError
	}
}
