package registry

import (
	"encoding/json"
	"time"
)

// Repository is the source repository of a package.
type Repository struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// UnmarshalJSON accepts both the object form and the shorthand string form.
func (r *Repository) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = Repository{URL: s}
		return nil
	}
	type plain Repository
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Repository(p)
	return nil
}

// Author is the package author.
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// UnmarshalJSON accepts both "Name <email>" strings and objects.
func (a *Author) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Author{Name: s}
		return nil
	}
	type plain Author
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = Author(p)
	return nil
}

// DownloadPoint is the download count of one day.
type DownloadPoint struct {
	Downloads int64  `json:"downloads"`
	Day       string `json:"day"`
}

// DownloadStats is a per-day download series.
type DownloadStats struct {
	Downloads []DownloadPoint `json:"downloads"`
	Start     string          `json:"start"`
	End       string          `json:"end"`
	Package   string          `json:"package"`
}

// Total sums the series.
func (s DownloadStats) Total() int64 {
	var n int64
	for _, p := range s.Downloads {
		n += p.Downloads
	}
	return n
}

// PackageStats is a download total over a period.
type PackageStats struct {
	Downloads int64  `json:"downloads"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Package   string `json:"package"`
}

// PackageInfo summarizes the latest version of a package.
type PackageInfo struct {
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	Description      string            `json:"description,omitempty"`
	Size             int64             `json:"size,omitempty"`
	UnpackedSize     int64             `json:"unpackedSize,omitempty"`
	Dependencies     map[string]string `json:"dependencies,omitempty"`
	PeerDependencies map[string]string `json:"peerDependencies,omitempty"`
	Repository       *Repository       `json:"repository,omitempty"`
	License          string            `json:"license,omitempty"`
	LastPublish      *time.Time        `json:"lastPublish,omitempty"`
	WeeklyDownloads  int64             `json:"weeklyDownloads"`
	Author           *Author           `json:"author,omitempty"`
	Keywords         []string          `json:"keywords,omitempty"`
	Homepage         string            `json:"homepage,omitempty"`
	Readme           string            `json:"readme,omitempty"`
	DownloadStats    *DownloadStats    `json:"downloadStats,omitempty"`
}

// document is the subset of a registry document that is read.
type document struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	DistTags    map[string]string  `json:"dist-tags"`
	Versions    map[string]version `json:"versions"`
	Time        map[string]string  `json:"time"`
	License     license            `json:"license"`
	Author      *Author            `json:"author"`
	Keywords    []string           `json:"keywords"`
	Homepage    string             `json:"homepage"`
	Readme      string             `json:"readme"`
}

type version struct {
	Dist struct {
		Size         int64 `json:"size"`
		UnpackedSize int64 `json:"unpackedSize"`
	} `json:"dist"`
	Dependencies     map[string]string `json:"dependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
	Repository       *Repository       `json:"repository"`
	License          license           `json:"license"`
	Author           *Author           `json:"author"`
	Keywords         []string          `json:"keywords"`
	Homepage         string            `json:"homepage"`
}

// license accepts "MIT" and the legacy {"type": "MIT"} form.
type license string

func (l *license) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = license(s)
		return nil
	}
	var obj struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*l = license(obj.Type)
	return nil
}

func (d document) info() (PackageInfo, error) {
	latest := d.DistTags["latest"]
	v, ok := d.Versions[latest]
	if latest == "" || !ok {
		return PackageInfo{}, ErrNoVersionData
	}

	info := PackageInfo{
		Name:             d.Name,
		Version:          latest,
		Description:      d.Description,
		Size:             v.Dist.Size,
		UnpackedSize:     v.Dist.UnpackedSize,
		Dependencies:     v.Dependencies,
		PeerDependencies: v.PeerDependencies,
		Repository:       v.Repository,
		License:          string(firstNonEmpty(v.License, d.License)),
		Author:           v.Author,
		Keywords:         v.Keywords,
		Homepage:         firstNonEmpty(v.Homepage, d.Homepage),
		Readme:           d.Readme,
	}
	if info.Author == nil {
		info.Author = d.Author
	}
	if len(info.Keywords) == 0 {
		info.Keywords = d.Keywords
	}
	if ts, err := time.Parse(time.RFC3339, d.Time[latest]); err == nil {
		info.LastPublish = &ts
	}
	return info, nil
}

func firstNonEmpty[T ~string](values ...T) T {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
