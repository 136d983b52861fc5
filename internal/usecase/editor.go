package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"resume-editor/internal/domain"
	"resume-editor/internal/model"
)

// Store is the persistence client the editor loads from and saves to: one
// document slot, two idempotent calls.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Replace(ctx context.Context, body []byte) error
}

var (
	ErrNotInitialized  = errors.New("editor not initialized")
	ErrCorruptDocument = errors.New("stored document is corrupt")
	ErrInvalidText     = errors.New("current text does not validate")
	ErrSaveFailed      = errors.New("save failed")
)

// EditResult describes the buffer right after an edit.
type EditResult struct {
	Status  domain.Status          `json:"status"`
	Dirty   bool                   `json:"dirty"`
	Applied bool                   `json:"applied"`
	Version uint64                 `json:"version"`
	Error   *model.ValidationError `json:"-"`
}

type SaveOutcome string

const (
	SaveNothingToDo     SaveOutcome = "nothing_to_do"
	SaveSaved           SaveOutcome = "saved"
	SaveRejectedInvalid SaveOutcome = "rejected_invalid"
	SaveFailed          SaveOutcome = "failed"
)

type SaveResult struct {
	Outcome SaveOutcome            `json:"outcome"`
	Status  domain.Status          `json:"status"`
	Dirty   bool                   `json:"dirty"`
	Error   *model.ValidationError `json:"-"`
}

// Snapshot is a consistent copy of the editor state. Document is shared and
// must be treated as read-only.
type Snapshot struct {
	Status    domain.Status
	RawText   string
	SavedText string
	Dirty     bool
	Collapsed bool
	Document  *model.Resume
	Version   uint64
	Error     *model.ValidationError
}

// Editor owns the raw JSON text being edited and the last valid Resume parsed
// from it. Every edit is validated; only a fully valid text replaces the
// document, and the raw text always keeps what the user typed. Dirty means
// the raw text differs from the last text the store confirmed.
//
// State is guarded by mu and never held across store calls. writeMu admits
// one Replace at a time so a slow save cannot land after a newer one.
type Editor struct {
	store Store
	log   zerolog.Logger

	mu          sync.Mutex
	initialized bool
	corrupt     bool
	raw         string
	saved       string
	doc         *model.Resume
	version     uint64
	lastErr     *model.ValidationError
	collapsed   bool

	writeMu sync.Mutex
}

func NewEditor(store Store, log zerolog.Logger) *Editor {
	return &Editor{
		store:     store,
		log:       log.With().Str("component", "editor").Logger(),
		collapsed: true,
	}
}

// Initialize loads the document and resets the buffer to it.
//
// A missing document or an unreachable store leaves the editor unloaded:
// no document, empty saved text, editing still possible. The returned error
// says why. A stored document that fails to parse or validate puts the
// editor in the terminal corrupt state and returns ErrCorruptDocument.
func (e *Editor) Initialize(ctx context.Context) (Snapshot, error) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	body, loadErr := e.store.Load(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.initialized = true
	e.corrupt = false
	e.lastErr = nil

	if loadErr != nil {
		e.raw, e.saved, e.doc = "", "", nil
		ev := e.log.Warn()
		if !errors.Is(loadErr, domain.ErrNotFound) {
			ev = e.log.Error().Stack()
		}
		ev.Err(loadErr).Msg("document not loaded, starting empty")
		return e.snapshotLocked(), fmt.Errorf("load document: %w", loadErr)
	}

	text := string(body)
	e.raw, e.saved = text, text

	doc, err := model.Parse(body)
	if err != nil {
		e.corrupt = true
		e.doc = nil
		e.lastErr = asValidationError(err)
		e.log.Error().Err(err).Int("bytes", len(body)).Msg("stored document is invalid")
		return e.snapshotLocked(), fmt.Errorf("%w: %w", ErrCorruptDocument, err)
	}

	e.doc = doc
	e.version++
	e.log.Info().Int("bytes", len(body)).Str("name", doc.Contact.Name).Msg("document loaded")
	return e.snapshotLocked(), nil
}

// OnTextChanged records new editor text. It never touches the store and
// never rejects the text; validation failures are reported in the result
// and leave the current document in place. The returned error is only for
// lifecycle misuse (not initialized, corrupt store).
func (e *Editor) OnTextChanged(text string) (EditResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.usableLocked(); err != nil {
		return e.editResultLocked(false), err
	}
	return e.applyLocked(text), nil
}

// Format pretty-prints the current text and applies it as an edit. Text that
// is not valid JSON is left as it is.
func (e *Editor) Format() (EditResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.usableLocked(); err != nil {
		return e.editResultLocked(false), err
	}
	if !gjson.Valid(e.raw) {
		return e.editResultLocked(false), nil
	}
	formatted := pretty.PrettyOptions([]byte(e.raw), &pretty.Options{Width: 80, Indent: "  "})
	return e.applyLocked(string(formatted)), nil
}

// Save sends the current text to the store when it differs from the saved
// text and validates. Overlapping calls queue; a queued call that finds the
// buffer clean returns SaveNothingToDo without writing.
func (e *Editor) Save(ctx context.Context) (SaveResult, error) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	e.mu.Lock()
	if err := e.usableLocked(); err != nil {
		res := e.saveResultLocked(SaveFailed)
		e.mu.Unlock()
		return res, err
	}
	if e.raw == e.saved {
		res := e.saveResultLocked(SaveNothingToDo)
		e.mu.Unlock()
		savesTotal.WithLabelValues(string(SaveNothingToDo)).Inc()
		return res, nil
	}
	if e.lastErr != nil {
		res := e.saveResultLocked(SaveRejectedInvalid)
		res.Error = e.lastErr
		kind := e.lastErr.Kind
		e.mu.Unlock()
		savesTotal.WithLabelValues(string(SaveRejectedInvalid)).Inc()
		e.log.Debug().Str("kind", kind.String()).Msg("save refused, text does not validate")
		return res, ErrInvalidText
	}
	text := e.raw
	e.mu.Unlock()

	err := e.store.Replace(ctx, []byte(text))

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		savesTotal.WithLabelValues(string(SaveFailed)).Inc()
		e.log.Error().Stack().Err(err).Int("bytes", len(text)).Msg("save failed")
		return e.saveResultLocked(SaveFailed), fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	e.saved = text
	savesTotal.WithLabelValues(string(SaveSaved)).Inc()
	e.log.Info().Int("bytes", len(text)).Bool("dirty", e.raw != e.saved).Msg("document saved")
	return e.saveResultLocked(SaveSaved), nil
}

// ToggleCollapsed flips the editor panel flag and returns the new value.
func (e *Editor) ToggleCollapsed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.collapsed = !e.collapsed
	return e.collapsed
}

func (e *Editor) SetCollapsed(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.collapsed = v
}

func (e *Editor) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Document returns the current valid document and its version. The version
// increases every time the document is replaced.
func (e *Editor) Document() (*model.Resume, uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc, e.version
}

func (e *Editor) Status() domain.Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.statusLocked()
}

func (e *Editor) applyLocked(text string) EditResult {
	e.raw = text

	doc, err := model.ParseString(text)
	if err != nil {
		e.lastErr = asValidationError(err)
		editsTotal.WithLabelValues(e.lastErr.Kind.String()).Inc()
		return e.editResultLocked(false)
	}

	e.doc = doc
	e.version++
	e.lastErr = nil
	editsTotal.WithLabelValues("applied").Inc()
	return e.editResultLocked(true)
}

func (e *Editor) usableLocked() error {
	if !e.initialized {
		return ErrNotInitialized
	}
	if e.corrupt {
		return ErrCorruptDocument
	}
	return nil
}

func (e *Editor) statusLocked() domain.Status {
	switch {
	case !e.initialized:
		return domain.StatusUninitialized
	case e.corrupt:
		return domain.StatusCorrupt
	case e.raw != e.saved && e.lastErr != nil:
		return domain.StatusDirtyInvalid
	case e.raw != e.saved:
		return domain.StatusDirtyValid
	case e.doc == nil || e.lastErr != nil:
		// Nothing was loaded and the buffer is back to the empty saved
		// text. A document applied by an earlier edit is kept, but the
		// editor still reports unloaded.
		return domain.StatusUnloaded
	default:
		return domain.StatusClean
	}
}

func (e *Editor) editResultLocked(applied bool) EditResult {
	return EditResult{
		Status:  e.statusLocked(),
		Dirty:   e.raw != e.saved,
		Applied: applied,
		Version: e.version,
		Error:   e.lastErr,
	}
}

func (e *Editor) saveResultLocked(o SaveOutcome) SaveResult {
	return SaveResult{Outcome: o, Status: e.statusLocked(), Dirty: e.raw != e.saved}
}

func (e *Editor) snapshotLocked() Snapshot {
	return Snapshot{
		Status:    e.statusLocked(),
		RawText:   e.raw,
		SavedText: e.saved,
		Dirty:     e.raw != e.saved,
		Collapsed: e.collapsed,
		Document:  e.doc,
		Version:   e.version,
		Error:     e.lastErr,
	}
}

func asValidationError(err error) *model.ValidationError {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	return &model.ValidationError{Kind: model.KindMalformedSyntax, Err: err}
}
