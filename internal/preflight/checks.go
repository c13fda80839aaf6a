package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"imagepuller/internal/graph"
)

// CredentialChecker is the Graph call used to verify a token.
type CredentialChecker interface {
	Me(ctx context.Context) (graph.Person, error)
}

// CheckGraph verifies that Graph accepts the credential held by client.
func CheckGraph(ctx context.Context, client CredentialChecker) Result {
	const name = "Microsoft Graph"

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	me, err := client.Me(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: summarizeGraphError(err)}
	}
	who := strings.TrimSpace(me.DisplayName)
	if who == "" {
		who = me.ID
	}
	if who == "" {
		return Result{Name: name, Passed: true, Detail: "Reachable"}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("Signed in as %s", who)}
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

func summarizeGraphError(err error) string {
	if errors.Is(err, graph.ErrUnauthorized) {
		return "auth failed (token rejected or expired)"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "auth check timed out (Graph API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "auth check timed out (Graph API unreachable)"
	}
	return fmt.Sprintf("auth check failed (%v)", err)
}
