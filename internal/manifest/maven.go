package manifest

import (
	"context"
	"encoding/xml"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/quasar/mc-installer/internal/httpclient"
	"github.com/quasar/mc-installer/internal/launcherr"
	"github.com/quasar/mc-installer/internal/model"
)

// MavenMetadata fetches and parses a maven-metadata.xml document, used by
// the Fabric/Forge loader orchestrators to resolve "latest installer"
// without hardcoding a version. Grounded in mod_utiles.rs's
// serde_xml_rs-based metadata fetch; this uses the standard library's
// encoding/xml since no pack repo imports a third-party XML library for
// this shape (see DESIGN.md).
func MavenMetadata(ctx context.Context, url string) (*model.MavenMetadata, error) {
	client := httpclient.New()
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, launcherr.HTTP("building maven-metadata request", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, launcherr.HTTP("fetching maven-metadata", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, launcherr.HTTP("unexpected status fetching maven-metadata", nil)
	}

	var m model.MavenMetadata
	if err := xml.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, launcherr.ParseJSON("decoding maven-metadata", err)
	}
	return &m, nil
}
