// Package nasa declares a client contract for NASA's Astronomy Picture of
// the Day service.
//
// The NASA interface and its result types live here; the implementation in
// package generated is produced from contract.yaml by apiary itself.
package nasa

import (
	"context"
	_ "embed"
	"time"

	"github.com/induct/apiary/contract"
)

//go:generate go run github.com/induct/apiary/cmd/apiary generate -contract contract.yaml -env local -output . -trim-prefix github.com/induct/apiary/internal/nasa -module-dir ../.. -clean

//go:embed contract.yaml
var contractYAML []byte

// NASA is the APOD service.
type NASA interface {
	// Apod returns the picture for date, or today's picture when date is nil.
	// The result is nil when the service rejects the request.
	Apod(ctx context.Context, date *time.Time, conceptTags *bool, hd *bool, apiKey string) (*ApodImage, error)
}

// ApodImage is one Astronomy Picture of the Day entry.
type ApodImage struct {
	URL         string   `json:"url"`
	HDURL       *string  `json:"hdurl,omitempty"`
	MediaType   string   `json:"media_type"`
	Explanation string   `json:"explanation"`
	Concepts    []string `json:"concepts"`
	Title       string   `json:"title"`
}

// Contract parses the embedded contract describing NASA.
func Contract() (*contract.Contract, error) {
	return contract.Parse(contractYAML)
}
