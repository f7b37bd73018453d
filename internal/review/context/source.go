// Package reviewcontext normalizes raw platform and renderer responses into
// the typed context objects the evaluator roles consume.
package reviewcontext

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"inspector/internal/logging"
	"inspector/internal/platform"
	"inspector/internal/tokenutil"
	"inspector/internal/uithub"
)

// DefaultMaxCodeTokens bounds how much source text reaches the model.
const DefaultMaxCodeTokens = 120_000

// skipFiles is the hard filtering contract: no file whose name contains one
// of these substrings (case-insensitively) may reach the model.
var skipFiles = []string{
	"license",
	"package-lock.json",
	"yarn.lock",
	"readme.md",
	"poetry.lock",
	"requirements.txt",
	"setup.py",
	"uv.lock",
}

// SourceFile is one source file, unique by path.
type SourceFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// CodeContext is the normalized codebase handed to the code-quality role.
type CodeContext struct {
	Tree  map[string]any `json:"tree"`
	Files []SourceFile   `json:"files"`
}

// CodeContextResult is either a code context or an explicit, gradable
// "code not available" state. Unavailable code is not an error.
type CodeContextResult struct {
	Context     *CodeContext
	Unavailable bool
}

// UnavailableMessage is what the code-quality role sees when no source and no
// resolvable repository exist. The role must grade the axis N/A on it.
func UnavailableMessage(actorName string) string {
	return fmt.Sprintf("Code for Actor %s is not available. Skip code evaluation and grade the code as N/A.", actorName)
}

// VersionLister is the platform subset the source adapter needs.
type VersionLister interface {
	Versions(ctx context.Context, identity *platform.Identity) ([]platform.Version, error)
}

// Renderer fetches a repository rendered as JSON, bounded by a token budget.
type Renderer interface {
	Render(ctx context.Context, repoPath string, maxTokens int) (*uithub.RepoDocument, error)
}

// SourceAdapter produces a CodeContext for an actor: bundled source files
// first, then any resolvable GitHub repository, then the unavailable state.
type SourceAdapter struct {
	api       VersionLister
	renderer  Renderer
	probe     *http.Client
	maxTokens int
	logger    logging.Logger
}

// NewSourceAdapter builds a source adapter. probe is used only to check that
// a repository URL resolves before it is handed to the renderer.
func NewSourceAdapter(api VersionLister, renderer Renderer, probe *http.Client, maxTokens int, logger logging.Logger) *SourceAdapter {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxCodeTokens
	}
	return &SourceAdapter{
		api:       api,
		renderer:  renderer,
		probe:     probe,
		maxTokens: maxTokens,
		logger:    logging.OrNop(logger),
	}
}

// CodeContext fetches and normalizes the actor's codebase. The build is the
// previously resolved latest build, reused to avoid a duplicate lookup.
func (a *SourceAdapter) CodeContext(ctx context.Context, identity *platform.Identity, build *platform.Build) (*CodeContextResult, error) {
	versions, err := a.api.Versions(ctx, identity)
	if err != nil {
		return nil, err
	}

	if files := bundledSourceFiles(versions); len(files) > 0 {
		a.logger.Info("actor %s: using %d bundled source files", identity.Name, len(files))
		return &CodeContextResult{Context: a.buildContext(files)}, nil
	}

	for _, repoURL := range repoURLs(build, versions) {
		if !a.repoExists(ctx, repoURL) {
			a.logger.Debug("actor %s: repository %s does not resolve", identity.Name, repoURL)
			continue
		}
		doc, err := a.renderer.Render(ctx, uithub.RepoPath(repoURL), a.maxTokens)
		if err != nil {
			return nil, err
		}
		return &CodeContextResult{Context: contextFromDocument(doc)}, nil
	}

	a.logger.Info("actor %s: no bundled source and no resolvable repository", identity.Name)
	return &CodeContextResult{Unavailable: true}, nil
}

// bundledSourceFiles returns the text-format files of the version tagged
// "latest", already denylist-filtered.
func bundledSourceFiles(versions []platform.Version) []SourceFile {
	for _, version := range versions {
		if version.BuildTag != "latest" {
			continue
		}
		var files []SourceFile
		for _, file := range version.SourceFiles {
			if !strings.EqualFold(file.Format, "text") {
				continue
			}
			if isDenylisted(file.Name) {
				continue
			}
			files = append(files, SourceFile{Path: file.Name, Content: file.Content})
		}
		return files
	}
	return nil
}

// repoURLs yields candidate repository URLs: the primary build's URL first,
// then every version's URL, in listing order.
func repoURLs(build *platform.Build, versions []platform.Version) []string {
	var urls []string
	if build != nil && build.ActVersion != nil && build.ActVersion.GitRepoURL != "" {
		urls = append(urls, build.ActVersion.GitRepoURL)
	}
	for _, version := range versions {
		if version.GitRepoURL != "" {
			urls = append(urls, version.GitRepoURL)
		}
	}
	return urls
}

func (a *SourceAdapter) repoExists(ctx context.Context, repoURL string) bool {
	if a.probe == nil {
		return true
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, repoURL, nil)
	if err != nil {
		return false
	}
	resp, err := a.probe.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

// buildContext assembles a CodeContext from bundled files, enforcing the
// token budget across file contents.
func (a *SourceAdapter) buildContext(files []SourceFile) *CodeContext {
	var (
		kept   []SourceFile
		budget = a.maxTokens
	)
	for _, file := range files {
		if budget <= 0 {
			break
		}
		cost := tokenutil.CountTokens(file.Content)
		if cost > budget {
			file.Content = tokenutil.TruncateToTokens(file.Content, budget)
			cost = budget
		}
		budget -= cost
		kept = append(kept, file)
	}

	paths := make([]string, 0, len(kept))
	for _, file := range kept {
		paths = append(paths, file.Path)
	}
	return &CodeContext{Tree: BuildFileTree(paths), Files: kept}
}

// contextFromDocument normalizes a rendered repository document: only
// "content" entries survive, denylisted names are dropped, and the tree is
// rebuilt from the surviving paths.
func contextFromDocument(doc *uithub.RepoDocument) *CodeContext {
	var (
		files []SourceFile
		paths []string
	)
	for path, entry := range doc.Files {
		if entry.Type != "content" {
			continue
		}
		if isDenylisted(path) {
			continue
		}
		files = append(files, SourceFile{Path: path, Content: entry.Content})
		paths = append(paths, path)
	}
	return &CodeContext{Tree: BuildFileTree(paths), Files: files}
}

func isDenylisted(name string) bool {
	lower := strings.ToLower(name)
	for _, skip := range skipFiles {
		if strings.Contains(lower, skip) {
			return true
		}
	}
	return false
}
