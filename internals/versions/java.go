package versions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// DefaultJavaMajor is assumed for versions that do not name a java version
const DefaultJavaMajor = 8

// JavaMajor fetches the descriptor of r and returns the java major version it requires
func (l *Loader) JavaMajor(ctx context.Context, r *Release) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return 0, err
	}
	res, err := l.Client.Do(req)
	if err != nil {
		return 0, errors.Wrapf(err, "cannot fetch required java version info for %s", r.ID)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("cannot fetch required java version info for %s: %s", r.ID, res.Status)
	}

	descriptor := struct {
		JavaVersion struct {
			MajorVersion int `json:"majorVersion"`
		} `json:"javaVersion"`
	}{}
	if err := json.NewDecoder(res.Body).Decode(&descriptor); err != nil {
		return 0, errors.Wrap(err, "invalid version descriptor")
	}
	if descriptor.JavaVersion.MajorVersion == 0 {
		return DefaultJavaMajor, nil
	}
	return descriptor.JavaVersion.MajorVersion, nil
}
