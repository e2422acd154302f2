package manifest

import (
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/beevik/etree"

	"github.com/treesmith/treesmith/pkg/errors"
	"github.com/treesmith/treesmith/pkg/logging"
	"github.com/treesmith/treesmith/pkg/types"
)

// xmlRemote is a <remote> element of a repo manifest.
type xmlRemote struct {
	name       string
	fetch      string
	defaultRef string
	hasRef     bool
}

// xmlDefault is the <default> element naming the default remote.
type xmlDefault struct {
	remote     string
	defaultRef string
	hasRef     bool
}

// xmlFile is a <copyfile> or <linkfile> child of a project.
type xmlFile struct {
	src  string
	dest string
}

// xmlProject is a <project> element.
type xmlProject struct {
	path      string
	repoName  string
	groups    []string
	remote    string
	gitRef    string
	copyfiles []xmlFile
	linkfiles []xmlFile
}

// xmlManifest is one parsed manifest file, before include flattening.
type xmlManifest struct {
	remotes       []xmlRemote
	defaultRemote *xmlDefault
	projects      []xmlProject
	includes      []string
}

// remoteSpec is a resolved remote: its base URL and default revision.
type remoteSpec struct {
	url        string
	defaultRef string
	hasRef     bool
}

// Importer accumulates projects from repo XML manifests, one branch at a
// time, into a single snapshot. Projects present on several branches get
// one branch_settings entry per imported branch.
type Importer struct {
	fs       types.FS
	projects map[string]*types.Project
}

// NewImporter creates an Importer reading through the given filesystem.
func NewImporter(fs types.FS) *Importer {
	return &Importer{
		fs:       fs,
		projects: make(map[string]*types.Project),
	}
}

// Import reads the flattened manifest rooted at dir/filename and records
// each project's settings under the given branch. rootURL is the URL of
// the manifest repository itself, used to resolve relative remotes.
func (i *Importer) Import(dir, filename, rootURL, branch string) error {
	logger := logging.GetLogger("manifest.import")

	m, err := readFlattened(i.fs, dir, filename, make(map[string]bool))
	if err != nil {
		return err
	}

	specs, err := m.remoteSpecs(rootURL)
	if err != nil {
		return err
	}

	for _, p := range m.projects {
		url, ref, err := m.urlAndRef(specs, p.remote, p.gitRef)
		if err != nil {
			return errors.Wrapf(err, errors.ErrManifestParse, "project %s", p.path)
		}

		entry, ok := i.projects[p.path]
		if !ok {
			entry = &types.Project{
				Path:           p.path,
				BranchSettings: make(map[string]types.BranchSettings),
			}
			i.projects[p.path] = entry
		}

		entry.BranchSettings[branch] = types.BranchSettings{
			Repo:      types.Repository{URL: url + "/" + p.repoName},
			GitRef:    ref,
			Copyfiles: filesToMap(p.copyfiles),
			Linkfiles: filesToMap(p.linkfiles),
			Groups:    p.groups,
		}
	}

	logger.Debug().
		Str("file", filepath.Join(dir, filename)).
		Str("branch", branch).
		Int("projects", len(m.projects)).
		Msg("Imported manifest")
	return nil
}

// Manifest returns the accumulated snapshot, sorted by path.
func (i *Importer) Manifest() *types.Manifest {
	projects := make([]types.Project, 0, len(i.projects))
	for _, p := range i.projects {
		projects = append(projects, *p)
	}
	sort.Slice(projects, func(a, b int) bool {
		return projects[a].Path < projects[b].Path
	})
	return &types.Manifest{Projects: projects}
}

// readFlattened reads a manifest file and recursively merges its
// includes. Included remotes and projects are appended; a default remote
// may be declared by at most one file in the include tree.
func readFlattened(fs types.FS, dir, filename string, seen map[string]bool) (*xmlManifest, error) {
	path := filepath.Join(dir, filename)
	if seen[path] {
		return nil, errors.Newf(errors.ErrManifestParse, "include cycle at %s", path)
	}
	seen[path] = true

	m, err := readXMLManifest(fs, path)
	if err != nil {
		return nil, err
	}

	for _, include := range m.includes {
		sub, err := readFlattened(fs, dir, include, seen)
		if err != nil {
			return nil, err
		}

		m.remotes = append(m.remotes, sub.remotes...)
		m.projects = append(m.projects, sub.projects...)

		if sub.defaultRemote != nil {
			if m.defaultRemote != nil {
				return nil, errors.Newf(errors.ErrManifestParse,
					"more than one default remote in include tree of %s", path)
			}
			m.defaultRemote = sub.defaultRemote
		}
	}

	m.includes = nil
	return m, nil
}

// readXMLManifest parses a single repo manifest XML file.
func readXMLManifest(fs types.FS, path string) (*xmlManifest, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "failed to read manifest %s", path)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to parse manifest %s", path)
	}

	root := doc.SelectElement("manifest")
	if root == nil {
		return nil, errors.Newf(errors.ErrManifestParse, "no manifest element in %s", path)
	}

	m := &xmlManifest{}

	for _, el := range root.SelectElements("remote") {
		r := xmlRemote{
			name:  el.SelectAttrValue("name", ""),
			fetch: el.SelectAttrValue("fetch", ""),
		}
		if attr := el.SelectAttr("revision"); attr != nil {
			r.defaultRef = attr.Value
			r.hasRef = true
		}
		m.remotes = append(m.remotes, r)
	}

	if el := root.SelectElement("default"); el != nil {
		d := &xmlDefault{
			remote: el.SelectAttrValue("remote", ""),
		}
		if attr := el.SelectAttr("revision"); attr != nil {
			d.defaultRef = attr.Value
			d.hasRef = true
		}
		m.defaultRemote = d
	}

	for _, el := range root.SelectElements("project") {
		p := xmlProject{
			path:     el.SelectAttrValue("path", ""),
			repoName: el.SelectAttrValue("name", ""),
			groups:   splitGroups(el.SelectAttrValue("groups", "")),
			remote:   el.SelectAttrValue("remote", ""),
			gitRef:   el.SelectAttrValue("revision", ""),
		}
		for _, f := range el.SelectElements("copyfile") {
			p.copyfiles = append(p.copyfiles, xmlFile{
				src:  f.SelectAttrValue("src", ""),
				dest: f.SelectAttrValue("dest", ""),
			})
		}
		for _, f := range el.SelectElements("linkfile") {
			p.linkfiles = append(p.linkfiles, xmlFile{
				src:  f.SelectAttrValue("src", ""),
				dest: f.SelectAttrValue("dest", ""),
			})
		}
		m.projects = append(m.projects, p)
	}

	for _, el := range root.SelectElements("include") {
		m.includes = append(m.includes, el.SelectAttrValue("name", ""))
	}

	return m, nil
}

// remoteSpecs resolves every remote to its base URL and default revision.
// A fetch value of ".." means "two path components above the manifest
// repository's own URL".
func (m *xmlManifest) remoteSpecs(rootURL string) (map[string]remoteSpec, error) {
	specs := make(map[string]remoteSpec, len(m.remotes))
	for _, r := range m.remotes {
		isDefault := m.defaultRemote != nil && m.defaultRemote.remote == r.name

		spec := remoteSpec{
			defaultRef: r.defaultRef,
			hasRef:     r.hasRef,
		}
		if isDefault && m.defaultRemote.hasRef {
			spec.defaultRef = m.defaultRemote.defaultRef
			spec.hasRef = true
		}

		if r.fetch != ".." {
			spec.url = strings.TrimSuffix(r.fetch, "/")
		} else {
			parts := strings.Split(rootURL, "/")
			if len(parts) < 2 {
				return nil, errors.Newf(errors.ErrManifestParse,
					"root URL %q too short to resolve relative remote %s", rootURL, r.name)
			}
			spec.url = strings.Join(parts[:len(parts)-2], "/")
		}

		specs[r.name] = spec
	}
	return specs, nil
}

// urlAndRef resolves a project's remote URL and git ref, falling back to
// the remote's default revision and then the manifest default.
func (m *xmlManifest) urlAndRef(specs map[string]remoteSpec, remote, customRef string) (string, string, error) {
	name := remote
	if name == "" {
		if m.defaultRemote == nil {
			return "", "", errors.New(errors.ErrManifestParse, "no default remote declared")
		}
		name = m.defaultRemote.remote
	}

	spec, ok := specs[name]
	if !ok {
		return "", "", errors.Newf(errors.ErrManifestParse, "unknown remote %q", name)
	}

	ref := customRef
	if ref == "" {
		switch {
		case spec.hasRef:
			ref = spec.defaultRef
		case m.defaultRemote != nil && m.defaultRemote.hasRef:
			ref = m.defaultRemote.defaultRef
		default:
			return "", "", errors.New(errors.ErrManifestParse, "no default revision declared")
		}
	}

	return spec.url, ref, nil
}

// splitGroups parses the groups attribute, which repo allows to be comma
// or whitespace separated.
func splitGroups(s string) []string {
	groups := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(groups) == 0 {
		return nil
	}
	return groups
}

// filesToMap converts copyfile/linkfile elements to the snapshot's
// dst -> src form.
func filesToMap(files []xmlFile) map[string]string {
	out := make(map[string]string, len(files))
	for _, f := range files {
		out[f.dest] = f.src
	}
	return out
}
