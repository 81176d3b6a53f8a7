package facebookimpl

import (
	"encoding/json"
	"fmt"

	"github.com/orgball2608/social-post-fetcher/internal/domain"
	apperrors "github.com/orgball2608/social-post-fetcher/pkg/errors"
)

type rawPost struct {
	URL     *string `json:"url"`
	Message *string `json:"message"`
	Image   *struct {
		URI string `json:"uri"`
	} `json:"image"`
	VideoFiles *struct {
		VideoHDFile string `json:"video_hd_file"`
	} `json:"video_files"`
	AlbumPreview []struct {
		ImageFileURI string `json:"image_file_uri"`
	} `json:"album_preview"`
}

// normalizePost maps one provider post to a domain.Post. Media is image, then
// HD video, then every album preview image; the three checks are independent.
func normalizePost(raw json.RawMessage) (domain.Post, error) {
	var p rawPost
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Post{}, fmt.Errorf("%w: post: %v", apperrors.ErrBadResponse, err)
	}

	media := make([]string, 0, 2+len(p.AlbumPreview))
	if p.Image != nil && p.Image.URI != "" {
		media = append(media, p.Image.URI)
	}
	if p.VideoFiles != nil && p.VideoFiles.VideoHDFile != "" {
		media = append(media, p.VideoFiles.VideoHDFile)
	}
	for _, img := range p.AlbumPreview {
		if img.ImageFileURI != "" {
			media = append(media, img.ImageFileURI)
		}
	}

	return domain.Post{
		URL:     deref(p.URL),
		Content: deref(p.Message),
		Media:   media,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
