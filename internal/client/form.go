package client

import (
	"context"
	"encoding/base64"
	"strings"
	"sync"
	"time"

	"github.com/ekinura/schoolboard/internal/pkg/apperrors"
	"github.com/ekinura/schoolboard/internal/pkg/logger"
	"github.com/ekinura/schoolboard/internal/pkg/schema"
)

// DefaultNavigateDelay is how long a successful submission stays on screen
// before the form navigates to the listing view.
const DefaultNavigateDelay = 1500 * time.Millisecond

// DefaultMaxUploadBytes is the advisory image size limit. Selections past
// it are warned about, never rejected.
const DefaultMaxUploadBytes = 10 << 20

// SubmissionForm holds the local state of the add-school form. The
// selected image is an owned copy taken on the accept path of SelectImage
// or Drop; Submit reads only that copy.
type SubmissionForm struct {
	mu sync.Mutex

	client *Client

	fields     schema.SchoolInput
	selected   *ImageBlob
	preview    string
	dragActive bool
	submitting bool

	maxUploadBytes int64
	navigateDelay  time.Duration
	navigate       func()
}

// NewSubmissionForm creates a form backed by the given API client.
// navigate runs after a successful submission, once the delay elapses;
// nil disables navigation.
func NewSubmissionForm(apiClient *Client, navigate func()) *SubmissionForm {
	return &SubmissionForm{
		client:         apiClient,
		maxUploadBytes: DefaultMaxUploadBytes,
		navigateDelay:  DefaultNavigateDelay,
		navigate:       navigate,
	}
}

// SetNavigateDelay overrides the delay before post-success navigation.
func (f *SubmissionForm) SetNavigateDelay(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.navigateDelay = d
}

// SetField updates one field value. Unknown field names are ignored.
func (f *SubmissionForm) SetField(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch name {
	case "name":
		f.fields.Name = value
	case "address":
		f.fields.Address = value
	case "city":
		f.fields.City = value
	case "state":
		f.fields.State = value
	case "contact":
		f.fields.Contact = value
	case "email_id":
		f.fields.EmailID = value
	}
}

// Fields returns a copy of the current field values.
func (f *SubmissionForm) Fields() schema.SchoolInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// SelectImage accepts an image chosen via the file picker. A non-image
// media type is rejected immediately and the previously accepted selection
// stays in place.
func (f *SubmissionForm) SelectImage(data []byte, filename, mediaType string) error {
	if !strings.HasPrefix(mediaType, "image/") {
		logger.Warn().Str("mediaType", mediaType).Str("filename", filename).Msg("Rejected non-image selection")
		return apperrors.ErrUnsupportedMediaType
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if int64(len(data)) > f.maxUploadBytes {
		// Advisory only: warn and accept.
		logger.Warn().Str("filename", filename).Int("size", len(data)).Msg("Selected image exceeds advised size limit")
	}

	f.selected = &ImageBlob{Data: data, Filename: filename, MediaType: mediaType}
	f.preview = "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
	return nil
}

// DragEnter marks the drop zone active.
func (f *SubmissionForm) DragEnter() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dragActive = true
}

// DragLeave marks the drop zone inactive.
func (f *SubmissionForm) DragLeave() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dragActive = false
}

// DragActive reports whether a drag is hovering the drop zone.
func (f *SubmissionForm) DragActive() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dragActive
}

// Drop accepts a file dropped onto the form: same rules as SelectImage,
// and the drop zone deactivates either way.
func (f *SubmissionForm) Drop(data []byte, filename, mediaType string) error {
	f.DragLeave()
	return f.SelectImage(data, filename, mediaType)
}

// SelectedImage returns the owned image selection, nil when none.
func (f *SubmissionForm) SelectedImage() *ImageBlob {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selected
}

// Preview returns the data URL rendering of the current selection.
func (f *SubmissionForm) Preview() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.preview
}

// Submitting reports whether a submission is in flight.
func (f *SubmissionForm) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Submit validates locally and posts the record. On success the form is
// cleared and navigation is scheduled after the configured delay; on any
// failure the entered values and selection are left intact for correction.
func (f *SubmissionForm) Submit(ctx context.Context) (int64, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return 0, apperrors.ErrBadRequest
	}
	f.submitting = true
	input := f.fields
	image := f.selected
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	if fieldErrs := schema.Validate(input); len(fieldErrs) > 0 {
		return 0, &SubmissionError{Message: "Validation failed", FieldErrors: fieldErrs}
	}

	id, err := f.client.SubmitSchool(ctx, input, image)
	if err != nil {
		return 0, err
	}

	f.mu.Lock()
	f.fields = schema.SchoolInput{}
	f.selected = nil
	f.preview = ""
	delay := f.navigateDelay
	navigate := f.navigate
	f.mu.Unlock()

	if navigate != nil {
		// Leave the success notification visible before moving on.
		time.AfterFunc(delay, navigate)
	}

	return id, nil
}
