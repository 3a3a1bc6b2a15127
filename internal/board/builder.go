package board

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/verte-zerg/quizboard/internal/errors"
	"github.com/verte-zerg/quizboard/internal/model"
)

const (
	DefaultColumns = 5
	DefaultRows    = 5
	MinRows        = 1
	MaxRows        = 10

	// DefaultQuestionValue replaces a non-positive value on edit.
	DefaultQuestionValue = 200
)

type cell struct {
	col, row int
}

// Builder edits a board grid and keeps at most one wager-special question.
type Builder struct {
	title      string
	categories []model.Category
	wager      *cell
	finalRound *model.FinalRound
	theme      *model.Theme
	rnd        *rand.Rand
}

// BuilderOption customizes NewBuilder.
type BuilderOption func(*Builder)

// WithSeed makes wager placement reproducible.
func WithSeed(seed int64) BuilderOption {
	return func(b *Builder) {
		b.rnd = rand.New(rand.NewSource(seed))
	}
}

// NewBuilder returns a builder holding an empty default-sized grid.
func NewBuilder(title string, opts ...BuilderOption) *Builder {
	b := &Builder{
		title: title,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(b)
	}
	for i := 0; i < DefaultColumns; i++ {
		b.categories = append(b.categories, newCategory(i, DefaultRows))
	}
	return b
}

func newCategory(col, rows int) model.Category {
	cat := model.Category{
		Name:      fmt.Sprintf("Category %d", col+1),
		Questions: make([]model.Question, 0, rows),
	}
	for r := 0; r < rows; r++ {
		cat.Questions = append(cat.Questions, model.Question{Value: (r + 1) * 200})
	}
	return cat
}

func (b *Builder) Columns() int { return len(b.categories) }

func (b *Builder) Rows() int {
	if len(b.categories) == 0 {
		return 0
	}
	return len(b.categories[0].Questions)
}

// Resize adds or removes trailing columns and rows until the grid matches.
func (b *Builder) Resize(columns, rows int) error {
	if columns < MinCategories || columns > MaxCategories {
		return errors.Capacityf("columns must be between %d and %d, got %d", MinCategories, MaxCategories, columns)
	}
	if rows < MinRows || rows > MaxRows {
		return errors.Capacityf("rows must be between %d and %d, got %d", MinRows, MaxRows, rows)
	}
	for b.Columns() < columns {
		if err := b.AddColumn(); err != nil {
			return err
		}
	}
	for b.Columns() > columns {
		if err := b.RemoveColumn(); err != nil {
			return err
		}
	}
	for b.Rows() < rows {
		if err := b.AddRow(); err != nil {
			return err
		}
	}
	for b.Rows() > rows {
		if err := b.RemoveRow(); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) AddColumn() error {
	if b.Columns() >= MaxCategories {
		return errors.Capacityf("maximum %d columns allowed", MaxCategories)
	}
	b.categories = append(b.categories, newCategory(b.Columns(), b.Rows()))
	return nil
}

// RemoveColumn drops the last column and the wager-special if it was there.
func (b *Builder) RemoveColumn() error {
	if b.Columns() <= MinCategories {
		return errors.Capacityf("must have at least %d column", MinCategories)
	}
	b.categories = b.categories[:b.Columns()-1]
	if b.wager != nil && b.wager.col == b.Columns() {
		b.wager = nil
	}
	return nil
}

func (b *Builder) AddRow() error {
	rows := b.Rows()
	if rows >= MaxRows {
		return errors.Capacityf("maximum %d rows allowed", MaxRows)
	}
	for i := range b.categories {
		b.categories[i].Questions = append(b.categories[i].Questions, model.Question{Value: (rows + 1) * 200})
	}
	return nil
}

// RemoveRow drops the last row and the wager-special if it was there.
func (b *Builder) RemoveRow() error {
	rows := b.Rows()
	if rows <= MinRows {
		return errors.Capacityf("must have at least %d row", MinRows)
	}
	for i := range b.categories {
		b.categories[i].Questions = b.categories[i].Questions[:rows-1]
	}
	if b.wager != nil && b.wager.row == rows-1 {
		b.wager = nil
	}
	return nil
}

// SetCategoryName renames a column. Names cannot be blank.
func (b *Builder) SetCategoryName(col int, name string) error {
	if col < 0 || col >= b.Columns() {
		return errors.NotFoundf("column %d not found", col)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New(errors.CodeValidation, errors.WithMessagef("category name cannot be empty"))
	}
	b.categories[col].Name = name
	return nil
}

// SetQuestion replaces a cell. Setting WagerSpecial moves the flag to this cell;
// clearing it on the flagged cell removes the flag.
func (b *Builder) SetQuestion(col, row int, q model.Question) error {
	if err := b.checkCell(col, row); err != nil {
		return err
	}
	if q.Value <= 0 {
		q.Value = DefaultQuestionValue
	}
	q.Question = strings.TrimSpace(q.Question)
	q.Answer = strings.TrimSpace(q.Answer)
	if q.WagerSpecial {
		b.wager = &cell{col: col, row: row}
	} else if b.wager != nil && *b.wager == (cell{col: col, row: row}) {
		b.wager = nil
	}
	q.WagerSpecial = false
	b.categories[col].Questions[row] = q
	return nil
}

// SetWagerSpecial moves the wager-special flag to the cell.
func (b *Builder) SetWagerSpecial(col, row int) error {
	if err := b.checkCell(col, row); err != nil {
		return err
	}
	b.wager = &cell{col: col, row: row}
	return nil
}

func (b *Builder) ClearWagerSpecial() {
	b.wager = nil
}

// WagerSpecial returns the flagged cell, if any.
func (b *Builder) WagerSpecial() (col, row int, ok bool) {
	if b.wager == nil {
		return 0, 0, false
	}
	return b.wager.col, b.wager.row, true
}

// PlaceRandomWagerSpecial flags a random cell.
func (b *Builder) PlaceRandomWagerSpecial() (col, row int) {
	col = b.rnd.Intn(b.Columns())
	row = b.rnd.Intn(b.Rows())
	b.wager = &cell{col: col, row: row}
	return col, row
}

// SetFinalRound enables the final round. A nil value disables it.
func (b *Builder) SetFinalRound(fr *model.FinalRound) {
	if fr == nil {
		b.finalRound = nil
		return
	}
	out := model.FinalRound{
		Category: strings.TrimSpace(fr.Category),
		Question: strings.TrimSpace(fr.Question),
		Answer:   strings.TrimSpace(fr.Answer),
	}
	if out.Category == "" {
		out.Category = DefaultFinalCategory
	}
	b.finalRound = &out
}

// SetTheme picks a preset by id or a custom colour set. Custom colours must
// pass ValidateCustomTheme. A nil value restores the default theme.
func (b *Builder) SetTheme(t *model.Theme) error {
	if t == nil {
		b.theme = nil
		return nil
	}
	if t.Preset != "" {
		if _, ok := Preset(t.Preset); !ok {
			return errors.New(errors.CodeValidation, errors.WithMessagef("unknown theme preset %q", t.Preset))
		}
		b.theme = &model.Theme{Preset: t.Preset}
		return nil
	}
	if err := ValidateCustomTheme(*t); err != nil {
		return errors.New(errors.CodeValidation, errors.WithMessagef("invalid theme"), errors.WithCause(err))
	}
	out := *t
	b.theme = &out
	return nil
}

// Config returns an independent copy of the board being built.
func (b *Builder) Config() model.Configuration {
	allowNegative := true
	cfg := model.Configuration{
		Title:      b.title,
		Categories: make([]model.Category, len(b.categories)),
		Settings:   &model.BoardSettings{AllowNegativeScores: &allowNegative},
	}
	for i, cat := range b.categories {
		qs := make([]model.Question, len(cat.Questions))
		copy(qs, cat.Questions)
		cfg.Categories[i] = model.Category{Name: cat.Name, Questions: qs}
	}
	if b.wager != nil {
		cfg.Categories[b.wager.col].Questions[b.wager.row].WagerSpecial = true
	}
	if b.finalRound != nil {
		fr := *b.finalRound
		cfg.FinalRound = &fr
	}
	if b.theme != nil {
		theme := *b.theme
		cfg.Theme = &theme
	}
	return cfg
}

func (b *Builder) checkCell(col, row int) error {
	if col < 0 || col >= b.Columns() || row < 0 || row >= b.Rows() {
		return errors.NotFoundf("cell %d/%d not found", col, row)
	}
	return nil
}
