package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shouni/emotive-flow/pkg/controller"
	"github.com/shouni/emotive-flow/pkg/domain"
	"github.com/shouni/emotive-flow/pkg/imgutil"
	"github.com/shouni/emotive-flow/pkg/utils"
)

type styleView struct {
	Name       string  `json:"name"`
	Primary    string  `json:"primary"`
	Secondary  string  `json:"secondary"`
	Accent     string  `json:"accent"`
	PeriodMs   int64   `json:"periodMs"`
	Opacity    float64 `json:"opacity"`
	BlurRadius int     `json:"blurRadius"`
}

type imageView struct {
	URL         string `json:"url"`
	DownloadURL string `json:"downloadUrl"`
	MimeType    string `json:"mimeType"`
	Filename    string `json:"filename"`
}

type stateView struct {
	State      string     `json:"state"`
	Loading    bool       `json:"loading"`
	Feeling    string     `json:"feeling"`
	Style      styleView  `json:"style"`
	Image      *imageView `json:"image,omitempty"`
	Error      string     `json:"error,omitempty"`
	Generation uint64     `json:"generation"`
}

type errorView struct {
	Error string `json:"error"`
}

func newStyleView(s domain.Style) styleView {
	return styleView{
		Name:       s.Name,
		Primary:    s.Primary,
		Secondary:  s.Secondary,
		Accent:     s.Accent,
		PeriodMs:   s.Period.Milliseconds(),
		Opacity:    s.Opacity,
		BlurRadius: s.BlurRadius,
	}
}

func newStateView(snap controller.Snapshot) stateView {
	v := stateView{
		State:      snap.State.String(),
		Loading:    snap.Loading(),
		Feeling:    snap.Feeling,
		Style:      newStyleView(snap.Style),
		Error:      snap.Error,
		Generation: snap.Generation,
	}
	if snap.Image != nil {
		// v はブラウザのキャッシュを世代ごとに分けるためのものです。
		v.Image = &imageView{
			URL:         fmt.Sprintf("/api/image?v=%d", snap.Generation),
			DownloadURL: fmt.Sprintf("/api/image?download=1&v=%d", snap.Generation),
			MimeType:    imgutil.NormalizeMimeType(snap.Image.MimeType),
			Filename:    utils.DownloadFilename(snap.Feeling, snap.Image.MimeType),
		}
	}
	return v
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorView{Error: msg})
}
