package loader

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/quasar/mc-installer/internal/launcherr"
)

func decodeJSON(resp *http.Response, out any) error {
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return launcherr.ParseJSON("decoding response body", err)
	}
	return nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
