package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"subfix/internal/config"
	"subfix/internal/rules"
)

const apiCheckTimeout = 10 * time.Second

// CheckCredential verifies that an AssemblyAI key was supplied.
func CheckCredential(apiKey string) Result {
	const name = "AssemblyAI key"
	if strings.TrimSpace(apiKey) == "" {
		return Result{Name: name, Detail: fmt.Sprintf("missing (set %s)", config.APIKeyEnv)}
	}
	return Result{Name: name, Passed: true, Detail: "set"}
}

// CheckAssemblyAI verifies that the API is reachable and the key is accepted.
// It makes a single request with a short timeout and no retries.
func CheckAssemblyAI(ctx context.Context, baseURL, apiKey string) Result {
	const name = "AssemblyAI API"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing url"}
	}
	if strings.TrimSpace(apiKey) == "" {
		return Result{Name: name, Detail: "missing api key"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, apiCheckTimeout)
	defer cancel()

	client := &http.Client{Timeout: apiCheckTimeout}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, base+"/v2/transcript?limit=1", nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%v)", err)}
	}
	req.Header.Set("Authorization", strings.TrimSpace(apiKey))

	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: summarizeNetworkError(err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return Result{Name: name, Passed: true, Detail: "Reachable"}
	case http.StatusUnauthorized, http.StatusForbidden:
		return Result{Name: name, Detail: "auth failed (invalid api key)"}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%d)", resp.StatusCode)}
	}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckCacheDirectory accepts a directory that does not exist yet, since the
// cache creates it on first use.
func CheckCacheDirectory(name, path string) Result {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
	}
	return CheckDirectoryAccess(name, path)
}

// CheckReadableFile verifies that path is a regular file the process can read.
func CheckReadableFile(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (readable)", path)}
}

// CheckRulesFile loads and compiles the rule table. Invalid rules do not fail
// the check because the engine skips them, but they are counted.
func CheckRulesFile(name, path string) Result {
	if access := CheckReadableFile(name, path); !access.Passed {
		return access
	}
	table, err := rules.LoadFile(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	invalid := 0
	for _, rule := range table {
		if _, err := rules.Compile(rule); err != nil {
			invalid++
		}
	}
	if invalid > 0 {
		return Result{
			Name:    name,
			Passed:  true,
			Warning: true,
			Detail:  fmt.Sprintf("%s (%d rules, %d invalid and will be skipped)", path, len(table), invalid),
		}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d rules)", path, len(table))}
}

func summarizeNetworkError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "health check timed out (API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (API unreachable)"
	}
	return fmt.Sprintf("unreachable (%v)", err)
}
