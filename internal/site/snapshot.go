package site

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inful/mdfp"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/apidocs/internal/apimeta"
	foundationerrors "git.home.luguber.info/inful/apidocs/internal/foundation/errors"
	"git.home.luguber.info/inful/apidocs/internal/logfields"
	"git.home.luguber.info/inful/apidocs/internal/metrics"
)

// Precompress selects the compressed siblings written next to each snapshot.
type Precompress string

const (
	PrecompressNone Precompress = "none"
	PrecompressGzip Precompress = "gzip"
	PrecompressZstd Precompress = "zstd"
)

// SnapshotOptions configures WriteSnapshots.
type SnapshotOptions struct {
	Precompress Precompress
	// Concurrency bounds parallel file writes; zero means four.
	Concurrency int
	// Now stamps the manifest; nil means time.Now.
	Now func() time.Time
}

// Snapshot is the JSON document written for one (version, type) pair.
type Snapshot struct {
	Version  string                `json:"version"`
	Metadata *apimeta.RenderedType `json:"metadata"`
	Headers  []apimeta.Header      `json:"headers"`
}

// VersionIndex lists the types written for one version.
type VersionIndex struct {
	Version string            `json:"version"`
	Default bool              `json:"default"`
	Types   map[string]string `json:"types"`
}

// ManifestFile describes one written file.
type ManifestFile struct {
	Path        string `json:"path"`
	Size        int    `json:"size"`
	Fingerprint string `json:"fingerprint"`
}

// Manifest summarizes a snapshot build.
type Manifest struct {
	BuildID        string         `json:"build_id"`
	GeneratedAt    time.Time      `json:"generated_at"`
	DefaultVersion string         `json:"default_version"`
	Versions       []string       `json:"versions"`
	Files          []ManifestFile `json:"files"`
}

type snapshotFile struct {
	rel  string
	data []byte
}

// WriteSnapshots renders every type of every version and writes the results
// below outDir. Rendering runs sequentially; file writes run in parallel.
func (s *Site) WriteSnapshots(ctx context.Context, outDir string, opts SnapshotOptions) (*Manifest, error) {
	start := time.Now()
	manifest, err := s.writeSnapshots(ctx, outDir, opts)
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultFailed
	}
	s.recorder.ObserveSnapshotWrite(time.Since(start), result)
	return manifest, err
}

func (s *Site) writeSnapshots(ctx context.Context, outDir string, opts SnapshotOptions) (*Manifest, error) {
	switch opts.Precompress {
	case "", PrecompressNone, PrecompressGzip, PrecompressZstd:
	default:
		return nil, foundationerrors.ValidationError("unknown precompress mode").
			WithContext("precompress", string(opts.Precompress)).
			Build()
	}

	files, err := s.snapshotFiles(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	manifest := &Manifest{
		BuildID:        uuid.NewString(),
		GeneratedAt:    now().UTC(),
		DefaultVersion: s.store.DefaultVersion(),
		Versions:       s.store.Versions(),
	}
	for _, f := range files {
		manifest.Files = append(manifest.Files, ManifestFile{
			Path:        f.rel,
			Size:        len(f.data),
			Fingerprint: mdfp.CalculateFingerprintFromParts("", string(f.data)),
		})
	}
	data, err := marshal(manifest)
	if err != nil {
		return nil, err
	}
	files = append(files, snapshotFile{rel: "manifest.json", data: data})

	limit := opts.Concurrency
	if limit <= 0 {
		limit = 4
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return writeSnapshotFile(outDir, f, opts.Precompress)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("Wrote metadata snapshots", logfields.Path(outDir), logfields.Count(len(files)))
	return manifest, nil
}

func (s *Site) snapshotFiles(ctx context.Context) ([]snapshotFile, error) {
	var files []snapshotFile
	for _, version := range s.store.Versions() {
		index := VersionIndex{
			Version: version,
			Default: s.store.IsDefault(version),
			Types:   make(map[string]string),
		}
		seen := make(map[string]string)
		for _, typeName := range s.store.Types(version) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			file := strings.ToLower(typeName) + ".json"
			if prev, dup := seen[file]; dup {
				return nil, foundationerrors.MetadataError("type names collide in snapshot file name").
					WithContext("version", version).
					WithContext("types", prev+", "+typeName).
					Build()
			}
			seen[file] = typeName

			p, rt, _, err := s.Render(typeName, version)
			if err != nil {
				return nil, err
			}
			data, err := marshal(Snapshot{
				Version:  version,
				Metadata: rt,
				Headers:  p.AppendAdditionalHeaders(nil),
			})
			if err != nil {
				return nil, err
			}
			files = append(files, snapshotFile{rel: filepath.Join(version, file), data: data})
			index.Types[typeName] = filepath.ToSlash(filepath.Join(version, file))
		}
		data, err := marshal(index)
		if err != nil {
			return nil, err
		}
		files = append(files, snapshotFile{rel: filepath.Join(version, "index.json"), data: data})
	}

	data, err := marshal(s.LinkTable())
	if err != nil {
		return nil, err
	}
	files = append(files, snapshotFile{rel: "links.json", data: data})

	sort.SliceStable(files, func(i, j int) bool { return files[i].rel < files[j].rel })
	return files, nil
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "failed to encode snapshot").Build()
	}
	return buf.Bytes(), nil
}

func writeSnapshotFile(outDir string, f snapshotFile, mode Precompress) error {
	path := filepath.Join(outDir, f.rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return foundationerrors.FileSystemError("failed to create snapshot directory").
			WithCause(err).
			WithContext("path", filepath.Dir(path)).
			Build()
	}
	if err := writeFile(path, f.data); err != nil {
		return err
	}
	switch mode {
	case PrecompressGzip:
		var buf bytes.Buffer
		zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
		if err != nil {
			return foundationerrors.InternalError("failed to create gzip writer").WithCause(err).Build()
		}
		if _, err := zw.Write(f.data); err != nil {
			return foundationerrors.InternalError("failed to gzip snapshot").WithCause(err).Build()
		}
		if err := zw.Close(); err != nil {
			return foundationerrors.InternalError("failed to gzip snapshot").WithCause(err).Build()
		}
		return writeFile(path+".gz", buf.Bytes())
	case PrecompressZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return foundationerrors.InternalError("failed to create zstd encoder").WithCause(err).Build()
		}
		defer func() { _ = enc.Close() }()
		return writeFile(path+".zst", enc.EncodeAll(f.data, nil))
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return foundationerrors.FileSystemError("failed to write snapshot").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
