package oracle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Run errors.
var (
	ErrUnavailable = errors.New("oracle unavailable")
	ErrRunFailed   = errors.New("oracle run failed")
)

// EnvVar opts tests into oracle runs.
const EnvVar = "MODAL_ORACLE"

// DefaultTimeout bounds one headless run.
const DefaultTimeout = 10 * time.Second

// Oracle runs key scripts through a headless Neovim.
type Oracle struct {
	binary  string
	timeout time.Duration
}

// Available reports whether oracle runs are possible and opted in.
func Available() bool {
	if os.Getenv(EnvVar) == "" {
		return false
	}
	_, err := exec.LookPath("nvim")
	return err == nil
}

// New creates an oracle. It fails when the binary is missing or the
// opt-in variable is unset.
func New() (*Oracle, error) {
	if os.Getenv(EnvVar) == "" {
		return nil, fmt.Errorf("%w: %s not set", ErrUnavailable, EnvVar)
	}
	path, err := exec.LookPath("nvim")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &Oracle{binary: path, timeout: DefaultTimeout}, nil
}

// Run applies a normal-mode key script to the given lines and returns
// the resulting buffer. Keys use Vim keycode notation with backslash
// escapes for specials (`dw`, `ci"hi\<Esc>`).
func (o *Oracle) Run(ctx context.Context, lines []string, keys string) ([]string, error) {
	dir, err := os.MkdirTemp("", "modal-oracle-")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRunFailed, err)
	}
	defer os.RemoveAll(dir)

	// Unique scratch names keep parallel test runs apart.
	path := filepath.Join(dir, uuid.NewString()+".txt")
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRunFailed, err)
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	script := fmt.Sprintf(`execute "normal! %s"`, keys)
	cmd := exec.CommandContext(ctx, o.binary,
		"--headless", "--clean", "-n",
		"-c", script,
		"-c", "wq",
		path,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%w: %v: %s", ErrRunFailed, err, strings.TrimSpace(string(out)))
	}

	result, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRunFailed, err)
	}
	return strings.Split(strings.TrimSuffix(string(result), "\n"), "\n"), nil
}
