package fontcheck

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/go-text/typesetting/fontscan"
	"golang.org/x/text/cases"

	"github.com/cmgsk/edda/pkg/richtext"
)

// minSimilarity 给出建议字体所需的最低相似度
const minSimilarity = 0.5

// NotFoundError 字体不存在，可能附带一个名称相近的字体
type NotFoundError struct {
	Name       string
	Suggestion string
}

func (e *NotFoundError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("字体 %q 不存在，是否要使用 %q", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("字体 %q 不存在", e.Name)
}

// Unwrap 让 errors.Is(err, richtext.ErrFontNotFound) 成立
func (e *NotFoundError) Unwrap() error {
	return richtext.ErrFontNotFound
}

// familyIndex 按大小写折叠后的名称索引字体族
type familyIndex struct {
	byFolded map[string]string
	families []string
}

func newFamilyIndex(families []string) *familyIndex {
	idx := &familyIndex{byFolded: make(map[string]string, len(families))}
	for _, family := range families {
		key := fold(family)
		if key == "" {
			continue
		}
		if _, dup := idx.byFolded[key]; dup {
			continue
		}
		idx.byFolded[key] = family
		idx.families = append(idx.families, family)
	}
	slices.Sort(idx.families)
	return idx
}

func (idx *familyIndex) lookup(name string) error {
	key := fold(name)
	if _, ok := idx.byFolded[key]; ok {
		return nil
	}
	return &NotFoundError{Name: name, Suggestion: idx.suggest(key)}
}

// suggest 返回与 key 最相近的字体族，相似度不足时返回空字符串
func (idx *familyIndex) suggest(key string) string {
	if key == "" {
		return ""
	}
	lev := metrics.NewLevenshtein()
	best, bestScore := "", minSimilarity
	for _, family := range idx.families {
		score := strutil.Similarity(key, fold(family), lev)
		if score > bestScore {
			best, bestScore = family, score
		}
	}
	return best
}

// fold 大小写折叠；Caser 不能并发使用，每次新建
func fold(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// StaticOracle 基于固定字体列表的查询服务，名称比较不区分大小写
type StaticOracle struct {
	index *familyIndex
}

// NewStaticOracle 创建固定字体列表的查询服务
func NewStaticOracle(families ...string) *StaticOracle {
	return &StaticOracle{index: newFamilyIndex(families)}
}

// Exists 实现 richtext.FontOracle
func (o *StaticOracle) Exists(name string) error {
	return o.index.lookup(name)
}

// Families 返回已知字体族，按名称排序
func (o *StaticOracle) Families() []string {
	return slices.Clone(o.index.families)
}

// Loader 返回可用的字体族名称
type Loader func() ([]string, error)

// SystemOracle 基于系统字体的查询服务。
//
// 第一次查询时扫描系统字体并缓存结果；扫描失败的错误会在之后的每次查询中返回，
// 它不包装 richtext.ErrFontNotFound。可以并发使用。
type SystemOracle struct {
	load Loader

	once  sync.Once
	index *familyIndex
	err   error
}

// NewSystemOracle 创建使用 go-text fontscan 扫描系统字体的查询服务。
// cacheDir 为 fontscan 索引缓存目录，为空时使用用户缓存目录。
func NewSystemOracle(cacheDir string) *SystemOracle {
	return NewSystemOracleWithLoader(func() ([]string, error) {
		return scanSystemFonts(cacheDir)
	})
}

// NewSystemOracleWithLoader 使用自定义加载函数创建查询服务
func NewSystemOracleWithLoader(load Loader) *SystemOracle {
	return &SystemOracle{load: load}
}

// Exists 实现 richtext.FontOracle
func (o *SystemOracle) Exists(name string) error {
	if err := o.init(); err != nil {
		return err
	}
	return o.index.lookup(name)
}

// Families 返回系统字体族，按名称排序
func (o *SystemOracle) Families() ([]string, error) {
	if err := o.init(); err != nil {
		return nil, err
	}
	return slices.Clone(o.index.families), nil
}

func (o *SystemOracle) init() error {
	o.once.Do(func() {
		families, err := o.load()
		if err != nil {
			o.err = fmt.Errorf("扫描系统字体失败: %w", err)
			return
		}
		o.index = newFamilyIndex(families)
	})
	return o.err
}

func scanSystemFonts(cacheDir string) ([]string, error) {
	if cacheDir == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			dir = os.TempDir()
		}
		cacheDir = dir
	}

	footprints, err := fontscan.SystemFonts(nil, cacheDir)
	if err != nil {
		return nil, err
	}
	families := make([]string, 0, len(footprints))
	for _, fp := range footprints {
		families = append(families, fp.Family)
	}
	return families, nil
}
