// Package process evaluates properties by running an external command per call.
//
// Requests travel as environment variables (THERMOPROPS_OP plus THERMOPROPS_ARG_*),
// never as command-line flags, so user input cannot inject options. The command
// answers with one JSON object on stdout:
//
//	{"fluids": ["Nitrogen"]}                      for op=fluids
//	{"name": "Nitrogen", "aliases": ["N2"]}       for op=fluid
//	{"value": 1.138}                              for op=props
//	{"error": "...", "code": "unknown_fluid"}     on failure ("rejected" for bad inputs)
package process

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/thermoprops/internal/logging"
	"github.com/aretw0/thermoprops/pkg/domain"
)

// Operations understood by the external command.
const (
	OpFluids = "fluids"
	OpFluid  = "fluid"
	OpProps  = "props"
)

// Error codes the command may report.
const (
	CodeUnknownFluid = "unknown_fluid"
	CodeRejected     = "rejected"
)

// EnvPrefix prefixes every request variable.
const EnvPrefix = "THERMOPROPS_"

// DefaultTimeout bounds a single command run.
const DefaultTimeout = 10 * time.Second

type reply struct {
	Fluids  []string `json:"fluids"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
	Formula string   `json:"formula"`
	Value   *float64 `json:"value"`
	Error   string   `json:"error"`
	Code    string   `json:"code"`
}

// Engine implements ports.PropertyEngine over an external command.
type Engine struct {
	cfg     Config
	baseDir string
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithBaseDir sets the working directory of the command.
func WithBaseDir(dir string) Option {
	return func(e *Engine) {
		e.baseDir = dir
	}
}

// WithTimeout bounds each command run.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine for cfg.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg, timeout: DefaultTimeout, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ready reports whether a command is configured.
func (e *Engine) Ready() bool {
	return strings.TrimSpace(e.cfg.Command) != ""
}

// ListFluids asks the command for its fluids and sorts them.
func (e *Engine) ListFluids(ctx context.Context) ([]string, error) {
	r, err := e.run(ctx, OpFluids, nil)
	if err != nil {
		return nil, err
	}
	fluids := append([]string(nil), r.Fluids...)
	sort.Strings(fluids)
	return fluids, nil
}

// FluidMetadata asks the command to describe fluid.
func (e *Engine) FluidMetadata(ctx context.Context, fluid string) (domain.FluidMetadata, error) {
	r, err := e.run(ctx, OpFluid, map[string]string{"FLUID": fluid})
	if err != nil {
		return domain.FluidMetadata{}, err
	}
	if r.Name == "" {
		return domain.FluidMetadata{}, fmt.Errorf("%w: %s", domain.ErrUnknownFluid, fluid)
	}
	aliases := r.Aliases
	if aliases == nil {
		aliases = []string{}
	}
	return domain.FluidMetadata{Name: r.Name, Aliases: aliases, Formula: r.Formula}, nil
}

// ComputeProperty runs one evaluation.
func (e *Engine) ComputeProperty(ctx context.Context, target, in1 string, v1 float64, in2 string, v2 float64, fluid string) (float64, error) {
	r, err := e.run(ctx, OpProps, map[string]string{
		"TARGET": target,
		"IN1":    in1,
		"V1":     strconv.FormatFloat(v1, 'g', -1, 64),
		"IN2":    in2,
		"V2":     strconv.FormatFloat(v2, 'g', -1, 64),
		"FLUID":  fluid,
	})
	if err != nil {
		return 0, err
	}
	if r.Value == nil {
		return 0, fmt.Errorf("%w: %s returned no value", domain.ErrRejectedInput, target)
	}
	if math.IsNaN(*r.Value) || math.IsInf(*r.Value, 0) {
		return 0, fmt.Errorf("%w: %s is not finite", domain.ErrRejectedInput, target)
	}
	return *r.Value, nil
}

func (e *Engine) run(ctx context.Context, op string, args map[string]string) (reply, error) {
	if !e.Ready() {
		return reply{}, domain.ErrEngineUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.cfg.Command, e.cfg.Args...)
	cmd.Dir = e.baseDir
	cmd.WaitDelay = time.Second

	env := []string{EnvPrefix + "OP=" + op}
	for k, v := range e.cfg.Environment {
		env = append(env, k+"="+v)
	}
	for k, v := range args {
		env = append(env, EnvPrefix+"ARG_"+strings.ToUpper(k)+"="+v)
	}
	cmd.Env = append(cmd.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	var r reply
	trimmed := bytes.TrimSpace(stdout.Bytes())
	parseErr := json.Unmarshal(trimmed, &r)

	// A structured error wins over the exit status.
	if parseErr == nil && (r.Error != "" || r.Code != "") {
		return reply{}, replyError(r)
	}
	if runErr != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return reply{}, fmt.Errorf("engine command timed out after %s", e.timeout)
		}
		e.logger.Warn("Engine command failed", "op", op, "err", runErr, "stderr", strings.TrimSpace(stderr.String()))
		return reply{}, fmt.Errorf("execution failed: %v. Stderr: %s", runErr, strings.TrimSpace(stderr.String()))
	}
	if parseErr != nil {
		return reply{}, fmt.Errorf("invalid engine reply to %s: %w", op, parseErr)
	}
	return r, nil
}

func replyError(r reply) error {
	msg := r.Error
	if msg == "" {
		msg = r.Code
	}
	switch r.Code {
	case CodeUnknownFluid:
		return fmt.Errorf("%w: %s", domain.ErrUnknownFluid, msg)
	case CodeRejected:
		return fmt.Errorf("%w: %s", domain.ErrRejectedInput, msg)
	}
	return errors.New(msg)
}
