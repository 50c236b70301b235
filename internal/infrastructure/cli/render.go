package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/asknix/asknix/internal/domain"
)

// renderResponse writes the response to stdout. JSON mode emits the whole
// structure; otherwise the formatted message is printed as-is.
func renderResponse(out io.Writer, resp domain.Response, asJSON, quiet bool) {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		_ = enc.Encode(resp)
		return
	}
	if resp.Message != "" {
		fmt.Fprintln(out, resp.Message)
	}
	if resp.FromCache && !quiet {
		fmt.Fprintln(out, "(cached)")
	}
}
