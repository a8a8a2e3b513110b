package github

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m-zajac/contribreport/internal/app"
)

type rateLimitResponse struct {
	Resources struct {
		Core rateResponse `json:"core"`
	} `json:"resources"`
}

type rateResponse struct {
	Limit     int   `json:"limit"`
	Used      int   `json:"used"`
	Remaining int   `json:"remaining"`
	Reset     int64 `json:"reset"`
}

func (r rateLimitResponse) ToQuota() app.Quota {
	core := r.Resources.Core
	return app.Quota{
		Limit:     core.Limit,
		Used:      core.Used,
		Remaining: core.Remaining,
		Reset:     time.Unix(core.Reset, 0),
	}
}

// languagesResponse keeps languages in the order of the json object.
type languagesResponse app.LanguageBreakdown

func (l *languagesResponse) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*l = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("unexpected languages token: %v", tok)
	}

	langs := languagesResponse{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected language name: %v", tok)
		}
		var bytes int
		if err := dec.Decode(&bytes); err != nil {
			return fmt.Errorf("decoding %s byte count: %w", name, err)
		}
		langs = append(langs, app.LanguageBytes{Name: name, Bytes: bytes})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*l = langs

	return nil
}

func (l languagesResponse) ToBreakdown() app.LanguageBreakdown {
	if l == nil {
		return app.LanguageBreakdown{}
	}
	return app.LanguageBreakdown(l)
}
