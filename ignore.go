package xldiff

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/sirupsen/logrus"
)

// IgnoreConfig is the immutable, process-wide ignore/force-include
// configuration. It is read-only for the whole run.
type IgnoreConfig struct {
	// IgnoredColors holds color tokens ("FF00FF00", a theme/indexed
	// number, ...). A cell whose fill matches one is routed to the
	// ignored bucket.
	IgnoredColors []string
	// IgnoredColumns is reserved; it is carried but not consulted.
	IgnoredColumns []string
	// ForceIncludeRanges are "A1:B5"-style ranges whose cells always
	// produce reportable issues, overriding every ignore rule.
	ForceIncludeRanges []string
	// IgnoredRanges are "A1:B5"-style ranges routed to the ignored bucket.
	IgnoredRanges []string
	// IgnoreExpr is an optional boolean expression over
	// {sheet, row, col, sampleValue, targetValue, sampleColor,
	// targetColor}; cells it matches are routed to the ignored bucket.
	IgnoreExpr string
}

// Classification is the routing decision for one cell comparison.
type Classification int

const (
	// ClassNormal issues go to the primary report.
	ClassNormal Classification = iota
	// ClassForced issues go to the primary report regardless of any
	// color or range ignore rule.
	ClassForced
	// ClassIgnored issues go to the separately counted ignored bucket.
	ClassIgnored
)

// IgnorePolicy classifies cell comparisons as Forced, Ignored, or Normal.
// Unparsable ranges and a non-compiling expression are skipped with a
// warning; the run continues with the remaining rules.
type IgnorePolicy struct {
	colors  []string
	force   []Rect
	ignored []Rect
	sample  *MergeResolver
	target  *MergeResolver
	rule    *vm.Program
	ruleSrc string
	log     *logrus.Logger

	ruleFailed bool // rule evaluation failed once; disabled for the rest of the run
}

// NewIgnorePolicy builds a policy from the configuration. The two
// resolvers provide fill colors and effective values on each side.
func NewIgnorePolicy(cfg IgnoreConfig, sample, target *MergeResolver, log *logrus.Logger) *IgnorePolicy {
	p := &IgnorePolicy{
		sample: sample,
		target: target,
		log:    log,
	}
	for _, c := range cfg.IgnoredColors {
		if c = strings.TrimSpace(c); c != "" {
			p.colors = append(p.colors, c)
		}
	}
	p.force = p.parseRanges(cfg.ForceIncludeRanges)
	p.ignored = p.parseRanges(cfg.IgnoredRanges)

	if cfg.IgnoreExpr != "" {
		program, err := expr.Compile(cfg.IgnoreExpr,
			expr.Env(map[string]any{}),
			expr.AllowUndefinedVariables(),
			expr.AsBool(),
		)
		if err != nil {
			p.log.WithError(err).Warnf("ignore expression %q does not compile, skipping it", cfg.IgnoreExpr)
		} else {
			p.rule = program
			p.ruleSrc = cfg.IgnoreExpr
		}
	}
	return p
}

// parseRanges parses range strings, skipping the unparsable ones.
func (p *IgnorePolicy) parseRanges(ranges []string) []Rect {
	var out []Rect
	for _, s := range ranges {
		if strings.TrimSpace(s) == "" {
			continue
		}
		r, err := ParseRect(s)
		if err != nil {
			p.log.WithError(err).Warnf("skipping unparsable range %q", s)
			continue
		}
		out = append(out, r)
	}
	return out
}

// Classify decides how issues at (row, sampleCol) / (row, targetCol) are
// routed. Precedence, highest first: force-include range, ignored range,
// ignored fill color on either side, expression rule, normal.
func (p *IgnorePolicy) Classify(sheet string, row, sampleCol, targetCol int) Classification {
	if p.InForceRange(row, sampleCol) || p.InForceRange(row, targetCol) {
		return ClassForced
	}
	if p.InIgnoredRange(row, sampleCol) || p.InIgnoredRange(row, targetCol) {
		return ClassIgnored
	}
	if p.fillIgnored(sheet, row, sampleCol) || p.fillIgnored(sheet, row, targetCol) {
		return ClassIgnored
	}
	if p.ruleIgnored(sheet, row, sampleCol, targetCol) {
		return ClassIgnored
	}
	return ClassNormal
}

// InForceRange reports whether (row, col) lies in a force-include range.
func (p *IgnorePolicy) InForceRange(row, col int) bool {
	return anyRectContains(p.force, row, col)
}

// InIgnoredRange reports whether (row, col) lies in an ignored range.
func (p *IgnorePolicy) InIgnoredRange(row, col int) bool {
	return anyRectContains(p.ignored, row, col)
}

func anyRectContains(rects []Rect, row, col int) bool {
	for _, r := range rects {
		if r.Contains(row, col) {
			return true
		}
	}
	return false
}

// fillIgnored reports whether the fill color at (row, col) on either grid
// matches an ignored color token. Both the raw cell and, when merged, the
// range's top-left cell are checked.
func (p *IgnorePolicy) fillIgnored(sheet string, row, col int) bool {
	if len(p.colors) == 0 {
		return false
	}
	for _, res := range []*MergeResolver{p.sample, p.target} {
		raw := NormalizeColor(res.grid.CellStyle(sheet, row, col).Fill.Start).String()
		if p.colorIgnored(raw) {
			return true
		}
		if _, merged := res.RangeAt(sheet, row, col); merged {
			eff := NormalizeColor(res.EffectiveStyle(sheet, row, col).Fill.Start).String()
			if p.colorIgnored(eff) {
				return true
			}
		}
	}
	return false
}

// colorIgnored matches a normalized cell color string against the ignored
// tokens: exact, alpha-stripped suffix (token "FFxxxxxx" matches a cell
// color ending in "xxxxxx"), or containment against theme:/indexed:
// string forms.
func (p *IgnorePolicy) colorIgnored(cellColor string) bool {
	for _, token := range p.colors {
		if cellColor == token {
			return true
		}
		if strings.HasPrefix(token, "FF") && strings.HasSuffix(cellColor, token[2:]) {
			return true
		}
		if strings.Contains(cellColor, "theme:"+token) || strings.Contains(cellColor, "indexed:"+token) {
			return true
		}
	}
	return false
}

// ruleIgnored evaluates the optional expression rule. A failing
// evaluation disables the rule for the rest of the run; it never aborts
// the comparison.
func (p *IgnorePolicy) ruleIgnored(sheet string, row, sampleCol, targetCol int) bool {
	if p.rule == nil || p.ruleFailed {
		return false
	}
	env := map[string]any{
		"sheet":       sheet,
		"row":         row,
		"col":         sampleCol,
		"sampleValue": p.sample.EffectiveValue(sheet, row, sampleCol),
		"targetValue": p.target.EffectiveValue(sheet, row, targetCol),
		"sampleColor": NormalizeColor(p.sample.EffectiveStyle(sheet, row, sampleCol).Fill.Start).String(),
		"targetColor": NormalizeColor(p.target.EffectiveStyle(sheet, row, targetCol).Fill.Start).String(),
	}
	out, err := expr.Run(p.rule, env)
	if err != nil {
		p.ruleFailed = true
		p.log.WithError(err).Warnf("ignore expression %q failed, disabling it", p.ruleSrc)
		return false
	}
	matched, ok := out.(bool)
	return ok && matched
}
