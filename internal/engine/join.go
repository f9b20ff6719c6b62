package engine

import (
	"fmt"
	"log/slog"

	"github.com/loamdb/loam/internal/domain/data"
	"github.com/loamdb/loam/internal/sql/ast"
	"github.com/loamdb/loam/internal/table"
)

// Side identifies which relation of a join is hashed.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// BuildSide is the planner rule for hash joins: hash the relation with
// fewer rows, scan the other against the map. Ties build on the left.
// Hashing the smaller side is what keeps the join O(N+M) instead of
// O(N×M).
func BuildSide(leftRows, rightRows int) Side {
	if rightRows < leftRows {
		return SideRight
	}
	return SideLeft
}

// executeJoin runs a two-table hash join. Every output row stores its
// fields namespaced by table alias ("alias.column"); an unmatched side
// contributes a single null marker under the bare alias.
func (e *Engine) executeJoin(stmt *ast.SelectStatement) (*Result, error) {
	join := stmt.Join

	leftT, err := e.catalog.Get(stmt.Table)
	if err != nil {
		return nil, err
	}
	rightT, err := e.catalog.Get(join.Table)
	if err != nil {
		return nil, err
	}

	leftAlias := stmt.Alias
	if leftAlias == "" {
		leftAlias = stmt.Table
	}
	rightAlias := join.Alias
	if rightAlias == "" {
		rightAlias = join.Table
	}

	leftCol, rightCol, err := resolveJoinKeys(join, leftAlias, rightAlias, leftT, rightT)
	if err != nil {
		return nil, err
	}

	leftRows := leftT.Rows()
	rightRows := rightT.Rows()
	build := BuildSide(len(leftRows), len(rightRows))

	slog.Debug("starting join",
		slog.String("kind", join.Kind.String()),
		slog.String("left_table", leftT.Name),
		slog.String("right_table", rightT.Name),
		slog.String("build_side", build.String()),
	)

	jc := &joinContext{
		leftAlias:  leftAlias,
		rightAlias: rightAlias,
		leftCol:    leftCol,
		rightCol:   rightCol,
		leftRows:   leftRows,
		rightRows:  rightRows,
	}

	var joined []data.Row
	switch join.Kind {
	case ast.JoinInner:
		joined = jc.inner(build)
	case ast.JoinLeft:
		joined = jc.left(build)
	case ast.JoinRight:
		joined = jc.right(build)
	default:
		return nil, fmt.Errorf("unknown join kind: %v", join.Kind)
	}

	if stmt.Where != nil {
		joined, err = filterJoined(joined, stmt.Where, leftAlias, rightAlias)
		if err != nil {
			return nil, err
		}
	}

	slog.Info("join completed",
		slog.String("kind", join.Kind.String()),
		slog.String("left_table", leftT.Name),
		slog.String("right_table", rightT.Name),
		slog.Int("result_rows", len(joined)),
	)

	return projectJoined(stmt, leftT, rightT, leftAlias, rightAlias, joined)
}

// resolveJoinKeys maps the two sides of `ON key1 = key2` onto one
// column per table. A qualified key binds to its alias; a bare key
// binds to whichever table's schema declares it, left first.
func resolveJoinKeys(join *ast.JoinClause, leftAlias, rightAlias string, leftT, rightT *table.Table) (string, string, error) {
	var leftCol, rightCol string

	bind := func(ref ast.ColumnRef) error {
		switch {
		case ref.Qualifier == leftAlias:
			leftCol = ref.Name
		case ref.Qualifier == rightAlias:
			rightCol = ref.Name
		case ref.Qualifier != "":
			return fmt.Errorf("unknown table alias %q in join condition", ref.Qualifier)
		default:
			if _, ok := leftT.Schema.Column(ref.Name); ok && leftCol == "" {
				leftCol = ref.Name
				return nil
			}
			if _, ok := rightT.Schema.Column(ref.Name); ok {
				rightCol = ref.Name
				return nil
			}
			return fmt.Errorf("unknown join key %q", ref.Name)
		}
		return nil
	}

	if err := bind(join.LeftKey); err != nil {
		return "", "", err
	}
	if err := bind(join.RightKey); err != nil {
		return "", "", err
	}
	if leftCol == "" || rightCol == "" {
		return "", "", fmt.Errorf("join condition must reference one column from each table")
	}
	return leftCol, rightCol, nil
}

type joinContext struct {
	leftAlias, rightAlias string
	leftCol, rightCol     string
	leftRows, rightRows   []*data.Row
}

// buildMap hashes the build side: join-key value → rows holding it.
// Null keys never enter the map, so they never match.
func buildMap(rows []*data.Row, col string) map[data.Value][]*data.Row {
	m := make(map[data.Value][]*data.Row, len(rows))
	for _, ref := range rows {
		v := ref.Get(col)
		if v.IsNull() {
			continue
		}
		m[v] = append(m[v], ref)
	}
	return m
}

func (jc *joinContext) inner(build Side) []data.Row {
	out := make([]data.Row, 0)
	if build == SideLeft {
		m := buildMap(jc.leftRows, jc.leftCol)
		for _, r := range jc.rightRows {
			v := r.Get(jc.rightCol)
			if v.IsNull() {
				continue
			}
			for _, l := range m[v] {
				out = append(out, jc.combine(*l, *r))
			}
		}
		return out
	}
	m := buildMap(jc.rightRows, jc.rightCol)
	for _, l := range jc.leftRows {
		v := l.Get(jc.leftCol)
		if v.IsNull() {
			continue
		}
		for _, r := range m[v] {
			out = append(out, jc.combine(*l, *r))
		}
	}
	return out
}

// left emits one or more rows per left-table row; an unmatched left
// row gets a null-padded right side.
func (jc *joinContext) left(build Side) []data.Row {
	out := make([]data.Row, 0, len(jc.leftRows))
	if build == SideRight {
		m := buildMap(jc.rightRows, jc.rightCol)
		for _, l := range jc.leftRows {
			v := l.Get(jc.leftCol)
			matches := m[v]
			if v.IsNull() || len(matches) == 0 {
				out = append(out, jc.padRight(*l))
				continue
			}
			for _, r := range matches {
				out = append(out, jc.combine(*l, *r))
			}
		}
		return out
	}

	// Left side is smaller: hash it, probe with the right side, then
	// null-pad whatever never matched.
	m := buildMap(jc.leftRows, jc.leftCol)
	matched := make(map[*data.Row]bool)
	for _, r := range jc.rightRows {
		v := r.Get(jc.rightCol)
		if v.IsNull() {
			continue
		}
		for _, l := range m[v] {
			out = append(out, jc.combine(*l, *r))
			matched[l] = true
		}
	}
	for _, l := range jc.leftRows {
		if !matched[l] {
			out = append(out, jc.padRight(*l))
		}
	}
	return out
}

// right mirrors left over the second-named table.
func (jc *joinContext) right(build Side) []data.Row {
	out := make([]data.Row, 0, len(jc.rightRows))
	if build == SideLeft {
		m := buildMap(jc.leftRows, jc.leftCol)
		for _, r := range jc.rightRows {
			v := r.Get(jc.rightCol)
			matches := m[v]
			if v.IsNull() || len(matches) == 0 {
				out = append(out, jc.padLeft(*r))
				continue
			}
			for _, l := range matches {
				out = append(out, jc.combine(*l, *r))
			}
		}
		return out
	}

	m := buildMap(jc.rightRows, jc.rightCol)
	matched := make(map[*data.Row]bool)
	for _, l := range jc.leftRows {
		v := l.Get(jc.leftCol)
		if v.IsNull() {
			continue
		}
		for _, r := range m[v] {
			out = append(out, jc.combine(*l, *r))
			matched[r] = true
		}
	}
	for _, r := range jc.rightRows {
		if !matched[r] {
			out = append(out, jc.padLeft(*r))
		}
	}
	return out
}

func (jc *joinContext) combine(l, r data.Row) data.Row {
	out := make(data.Row, len(l)+len(r))
	for k, v := range l {
		out[jc.leftAlias+"."+k] = v
	}
	for k, v := range r {
		out[jc.rightAlias+"."+k] = v
	}
	return out
}

func (jc *joinContext) padRight(l data.Row) data.Row {
	out := make(data.Row, len(l)+1)
	for k, v := range l {
		out[jc.leftAlias+"."+k] = v
	}
	out[jc.rightAlias] = data.Null()
	return out
}

func (jc *joinContext) padLeft(r data.Row) data.Row {
	out := make(data.Row, len(r)+1)
	for k, v := range r {
		out[jc.rightAlias+"."+k] = v
	}
	out[jc.leftAlias] = data.Null()
	return out
}

// filterJoined applies the single equality condition that may follow
// the ON clause. A bare column name is matched against either alias's
// namespaced field.
func filterJoined(rows []data.Row, cond *ast.Condition, leftAlias, rightAlias string) ([]data.Row, error) {
	if cond.Op != ast.OpEqual {
		return nil, fmt.Errorf("JOIN queries support only an equality WHERE condition")
	}

	var keys []string
	if cond.Column.Qualifier != "" {
		keys = []string{cond.Column.Qualifier + "." + cond.Column.Name}
	} else {
		keys = []string{
			leftAlias + "." + cond.Column.Name,
			rightAlias + "." + cond.Column.Name,
		}
	}

	out := make([]data.Row, 0, len(rows))
	for _, row := range rows {
		for _, k := range keys {
			if v, ok := row[k]; ok && v.Equal(cond.Value) {
				out = append(out, row)
				break
			}
		}
	}
	return out, nil
}

// projectJoined shapes the joined rows. `*` keeps all namespaced
// fields; an explicit list resolves each name as alias.column or, if
// bare, against the first table's schema then the second's.
func projectJoined(stmt *ast.SelectStatement, leftT, rightT *table.Table, leftAlias, rightAlias string, joined []data.Row) (*Result, error) {
	if stmt.Star {
		columns := make([]string, 0, len(leftT.Schema.Columns)+len(rightT.Schema.Columns))
		for _, col := range leftT.Schema.Columns {
			columns = append(columns, leftAlias+"."+col.Name)
		}
		for _, col := range rightT.Schema.Columns {
			columns = append(columns, rightAlias+"."+col.Name)
		}
		return &Result{
			Columns: columns,
			Rows:    joined,
			Message: fmt.Sprintf("SELECT %d", len(joined)),
		}, nil
	}

	keys := make([]string, len(stmt.Projection))
	columns := make([]string, len(stmt.Projection))
	for i, ref := range stmt.Projection {
		switch {
		case ref.Qualifier == leftAlias || ref.Qualifier == rightAlias:
			keys[i] = ref.Qualifier + "." + ref.Name
		case ref.Qualifier != "":
			return nil, fmt.Errorf("unknown table alias %q in projection", ref.Qualifier)
		default:
			if _, ok := leftT.Schema.Column(ref.Name); ok {
				keys[i] = leftAlias + "." + ref.Name
			} else if _, ok := rightT.Schema.Column(ref.Name); ok {
				keys[i] = rightAlias + "." + ref.Name
			} else {
				return nil, fmt.Errorf("unknown column %s in projection", ref.Name)
			}
		}
		columns[i] = ref.String()
	}

	rows := make([]data.Row, len(joined))
	for i, row := range joined {
		out := make(data.Row, len(keys))
		for j, k := range keys {
			v, ok := row[k]
			if !ok {
				v = data.Null() // null-padded side
			}
			out[columns[j]] = v
		}
		rows[i] = out
	}
	return &Result{
		Columns: columns,
		Rows:    rows,
		Message: fmt.Sprintf("SELECT %d", len(rows)),
	}, nil
}
