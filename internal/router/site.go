package router

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"folio/internal/common"
	"folio/internal/config"
	"folio/internal/domain/behavior"
	"folio/internal/infra/surface/htmldoc"

	"github.com/gin-gonic/gin"
)

// site serves the static portfolio directory.
type site struct {
	dir   string
	index string
}

func newSite(cfg config.SiteConfig) *site {
	return &site{dir: cfg.Dir, index: cfg.Index}
}

// resolve maps a URL path to a file under the site directory. Directories
// resolve to their index file.
func (s *site) resolve(urlPath string) (string, bool) {
	clean := path.Clean("/" + urlPath)
	fp := filepath.Join(s.dir, filepath.FromSlash(clean))

	info, err := os.Stat(fp)
	if err != nil {
		return "", false
	}
	if info.IsDir() {
		fp = filepath.Join(fp, s.index)
		if info, err = os.Stat(fp); err != nil || info.IsDir() {
			return "", false
		}
	}
	return fp, true
}

func (s *site) serve(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		common.Error(c, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	fp, ok := s.resolve(c.Request.URL.Path)
	if !ok {
		common.HandleError(c, common.NewNotFoundError("page", c.Request.URL.Path))
		return
	}
	c.File(fp)
}

type hookStatus struct {
	Name     string `json:"name"`
	Selector string `json:"selector"`
}

// hooks handles GET /api/v1/hooks: which behavior hooks the index page
// is missing.
func (s *site) hooks(c *gin.Context) {
	fp, ok := s.resolve("/")
	if !ok {
		common.HandleError(c, common.NewNotFoundError("page", "/"+s.index))
		return
	}
	doc, err := htmldoc.Load(fp)
	if err != nil {
		common.HandleError(c, err)
		return
	}

	missing := make([]hookStatus, 0)
	for _, h := range behavior.Verify(doc) {
		missing = append(missing, hookStatus{Name: h.Name, Selector: h.Selector})
	}
	common.Success(c, http.StatusOK, gin.H{
		"page":    s.index,
		"ready":   len(missing) == 0,
		"missing": missing,
	})
}
