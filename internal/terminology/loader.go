package terminology

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"nkrane/internal/domain"

	"go.uber.org/zap"
)

//go:embed builtin
var builtinFS embed.FS

// Builtin returns the embedded terminology tree
func Builtin() fs.FS {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err)
	}
	return sub
}

// FileSource is a single user file for one scope
type FileSource struct {
	Path     string
	Domain   string
	Language string
}

// Options selects the sources of a store. Sources are merged in order:
// built-in, Dir, Files, Extra; user sources override built-in terms.
type Options struct {
	UseBuiltin bool
	Dir        string
	Files      []FileSource
	Extra      []domain.Entry
}

// Load builds a store from opts
func Load(opts Options, logger *zap.Logger) (*Store, error) {
	b := NewBuilder(logger)

	if opts.UseBuiltin {
		entries, err := LoadFS(Builtin(), domain.OriginBuiltin)
		if err != nil {
			return nil, fmt.Errorf("failed to load built-in terminology: %w", err)
		}
		b.Add(entries...)
	}

	if opts.Dir != "" {
		entries, err := LoadFS(os.DirFS(opts.Dir), domain.OriginUser)
		if err != nil {
			return nil, fmt.Errorf("failed to load terminology from %s: %w", opts.Dir, err)
		}
		b.Add(entries...)
	}

	for _, src := range opts.Files {
		if strings.TrimSpace(src.Language) == "" {
			return nil, fmt.Errorf("terminology file %s: target language is required", src.Path)
		}
		entries, err := ParseFile(src.Path, domain.NewScope(src.Domain, src.Language), domain.OriginUser)
		if err != nil {
			return nil, err
		}
		b.Add(entries...)
	}

	for i := range opts.Extra {
		opts.Extra[i].Origin = domain.OriginUser
	}
	b.Add(opts.Extra...)

	store := b.Build()
	stats := store.Stats()
	logger.Info("Terminology loaded",
		zap.Int("total", stats.Total),
		zap.Int("builtin", stats.Builtin),
		zap.Int("user", stats.User),
		zap.Int("scopes", len(store.Pairs())),
	)

	return store, nil
}

// LoadFS reads every <domain>/<language>.<csv|json|yaml|yml> file of fsys.
// Files at the root belong to the general domain. Other files are ignored.
func LoadFS(fsys fs.FS, origin domain.Origin) ([]domain.Entry, error) {
	var entries []domain.Entry

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := path.Ext(p)
		format, ferr := ParseFormat(ext)
		if ferr != nil {
			return nil
		}

		dir := path.Dir(p)
		if strings.Contains(dir, "/") {
			return nil
		}
		domainName := ""
		if dir != "." {
			domainName = dir
		}
		language := strings.TrimSuffix(path.Base(p), ext)

		f, err := fsys.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()

		parsed, err := ParseSource(f, format, p, domain.NewScope(domainName, language), origin)
		if err != nil {
			return err
		}
		entries = append(entries, parsed...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}
