package engineproc

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	commandv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/command/v1"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/infrastructure/venuefs"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/pkg/config"
)

// Engine drives the matching engine through its command file. The engine
// reads one command per run, so runs are serialized.
type Engine struct {
	mu sync.Mutex

	workDir      string
	commandPath  string
	consolePath  string
	binary       string
	buildCommand []string
	timeout      time.Duration
	buildTimeout time.Duration
	logger       logger.Interface
}

var _ commandv1.Engine = (*Engine)(nil)

// NewEngine creates an engine runner from the venue and engine settings.
func NewEngine(engine config.EngineConfig, venue config.VenueConfig, logger logger.Interface) (*Engine, error) {
	workDir, err := filepath.Abs(venue.WorkDir)
	if err != nil {
		return nil, err
	}
	binary := engine.Binary
	if !filepath.IsAbs(binary) {
		binary = filepath.Join(workDir, binary)
	}

	return &Engine{
		workDir:      workDir,
		commandPath:  venue.Path(venue.CommandFile),
		consolePath:  venue.Path(venue.ConsoleFile),
		binary:       binary,
		buildCommand: strings.Fields(engine.BuildCommand),
		timeout:      engine.Timeout,
		buildTimeout: engine.BuildTimeout,
		logger:       logger,
	}, nil
}

// Execute writes command, builds the binary when it is missing and runs it.
func (e *Engine) Execute(ctx context.Context, command string) (commandv1.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	if err := os.WriteFile(e.commandPath, []byte(command), 0o644); err != nil {
		return commandv1.Result{}, fmt.Errorf("failed to write command file: %w", err)
	}

	result := commandv1.Result{Status: commandv1.StatusSuccess, Message: "Command executed successfully"}

	if _, err := os.Stat(e.binary); stderrors.Is(err, fs.ErrNotExist) {
		e.logger.InfoContext(ctx, "building matching engine", logger.NewField("command", strings.Join(e.buildCommand, " ")))
		if failed := e.run(ctx, e.buildTimeout, e.buildCommand, commandv1.StatusCompileFailure, "Compilation error"); failed != nil {
			failed.Duration = time.Since(start)
			return *failed, nil
		}
	}

	if failed := e.run(ctx, e.timeout, []string{e.binary}, commandv1.StatusRuntimeFailure, "Runtime error"); failed != nil {
		failed.Duration = time.Since(start)
		return *failed, nil
	}

	output, err := e.ReadConsole(ctx)
	if err != nil {
		return commandv1.Result{}, err
	}
	result.Output = output
	result.Duration = time.Since(start)
	return result, nil
}

// ReadConsole returns the console output file, empty when the engine has not written one.
func (e *Engine) ReadConsole(ctx context.Context) (string, error) {
	output, _, err := venuefs.ReadOptional(e.consolePath)
	return output, err
}

// run executes argv in the work dir. It returns nil on success and a failed
// result otherwise.
func (e *Engine) run(ctx context.Context, timeout time.Duration, argv []string, status commandv1.Status, label string) *commandv1.Result {
	if len(argv) == 0 {
		return &commandv1.Result{Status: status, Message: label + ": empty command"}
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = e.workDir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &commandv1.Result{
			Status:  commandv1.StatusTimeout,
			Message: fmt.Sprintf("%s: %s exceeded %s", label, filepath.Base(argv[0]), timeout),
			Stderr:  stderr.String(),
		}
	}

	detail := strings.TrimSpace(stderr.String())
	if detail == "" {
		detail = err.Error()
	}
	return &commandv1.Result{
		Status:  status,
		Message: label + ": " + detail,
		Stderr:  stderr.String(),
	}
}
