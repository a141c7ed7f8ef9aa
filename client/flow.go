package client

import (
	"context"
	"encoding/base64"
	"errors"
)

// FlowState tracks where a controller is in its submission lifecycle.
type FlowState int

const (
	FlowIdle FlowState = iota
	FlowSubmitting
	FlowSucceeded
	FlowFailed
)

func (s FlowState) String() string {
	switch s {
	case FlowIdle:
		return "idle"
	case FlowSubmitting:
		return "submitting"
	case FlowSucceeded:
		return "succeeded"
	case FlowFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrFlowBusy is returned when a flow is re-triggered mid-submission.
var ErrFlowBusy = errors.New("submission already in progress")

// Frontend is the UI port a flow drives. Busy disables the triggering
// control and shows a progress label; Restore undoes exactly that. Confirm
// blocks for a yes/no answer. Navigate moves to another page.
type Frontend interface {
	Busy(label string)
	Restore()
	Alert(msg string)
	Confirm(msg string) bool
	Navigate(target string)
}

// PhotoMeta carries the editable metadata entered alongside an upload.
type PhotoMeta struct {
	Name        string
	Date        string
	People      string
	Description string
}

// addPhotoPayload always sends every key, empty or not, so the server sees
// exactly what the form held.
type addPhotoPayload struct {
	ImageURL     string `json:"imageUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	StoragePath  string `json:"storagePath"`
	ThumbPath    string `json:"thumbPath"`
	Name         string `json:"name"`
	Date         string `json:"date"`
	People       string `json:"people"`
	Description  string `json:"description"`
}

// AddFlow sequences upload then record creation. Steps run strictly in
// order; the first failure aborts, restores the controls, alerts, and
// settles the flow in failed. The next trigger re-arms it through idle. A
// completed upload is not rolled back when the record creation after it
// fails.
type AddFlow struct {
	session  *Session
	uploader ImageUploader
	caller   Caller
	fe       Frontend
	state    FlowState
}

// NewAddFlow builds an AddFlow.
func NewAddFlow(session *Session, uploader ImageUploader, caller Caller, fe Frontend) *AddFlow {
	return &AddFlow{session: session, uploader: uploader, caller: caller, fe: fe}
}

// State reports the flow's current lifecycle state.
func (f *AddFlow) State() FlowState { return f.state }

// Run uploads the image and creates its record, then navigates to the list.
// Guard failures alert and leave the flow idle without any remote call.
func (f *AddFlow) Run(ctx context.Context, filename string, contents []byte, meta PhotoMeta) error {
	if f.state == FlowSubmitting {
		return ErrFlowBusy
	}
	f.state = FlowIdle

	user := f.session.Current()
	if user == nil {
		f.fe.Alert("You must be signed in to add a photo.")
		return nil
	}
	if len(contents) == 0 {
		f.fe.Alert("Please choose a photo to upload.")
		return nil
	}

	f.state = FlowSubmitting
	f.fe.Busy("Uploading...")

	img, err := f.uploader.Upload(ctx, user.ID, filename, contents)
	if err != nil {
		return f.fail(err)
	}

	payload := addPhotoPayload{
		ImageURL:     img.URL,
		ThumbnailURL: img.ThumbURL,
		StoragePath:  img.Key,
		ThumbPath:    img.ThumbKey,
		Name:         meta.Name,
		Date:         meta.Date,
		People:       meta.People,
		Description:  meta.Description,
	}
	if err := f.caller.Call(ctx, "addphoto", payload, nil); err != nil {
		return f.fail(err)
	}

	f.state = FlowSucceeded
	f.fe.Navigate("/")
	return nil
}

func (f *AddFlow) fail(err error) error {
	f.fe.Restore()
	f.fe.Alert(err.Error())
	f.state = FlowFailed
	return err
}

type editPhotoPayload struct {
	PhotoID     string            `json:"photoId"`
	UpdatedData map[string]string `json:"updatedData"`
}

// EditFlow loads a record for prefill and submits a partial metadata update.
type EditFlow struct {
	session *Session
	caller  Caller
	fe      Frontend
	state   FlowState
}

// NewEditFlow builds an EditFlow.
func NewEditFlow(session *Session, caller Caller, fe Frontend) *EditFlow {
	return &EditFlow{session: session, caller: caller, fe: fe}
}

// State reports the flow's current lifecycle state.
func (f *EditFlow) State() FlowState { return f.state }

// Load fetches the record so the form can be prefilled. An unauthenticated
// visit redirects to the listing page without touching the server.
func (f *EditFlow) Load(ctx context.Context, photoID string) (*Photo, error) {
	if f.session.Current() == nil {
		f.fe.Navigate("/")
		return nil, nil
	}

	var p Photo
	if err := f.caller.Call(ctx, "getphotodetails", map[string]string{"photoId": photoID}, &p); err != nil {
		f.fe.Alert(err.Error())
		return nil, err
	}
	return &p, nil
}

// Submit sends the update and navigates back to the list. Keys present in
// fields with empty values clear those fields on the record; keys left out
// stay untouched.
func (f *EditFlow) Submit(ctx context.Context, photoID string, fields map[string]string) error {
	if f.state == FlowSubmitting {
		return ErrFlowBusy
	}
	f.state = FlowIdle
	if f.session.Current() == nil {
		f.fe.Alert("You must be signed in to edit a photo.")
		return nil
	}

	f.state = FlowSubmitting
	f.fe.Busy("Saving...")

	payload := editPhotoPayload{PhotoID: photoID, UpdatedData: fields}
	if err := f.caller.Call(ctx, "editphoto", payload, nil); err != nil {
		f.fe.Restore()
		f.fe.Alert(err.Error())
		f.state = FlowFailed
		return err
	}

	f.state = FlowSucceeded
	f.fe.Navigate("/")
	return nil
}

// DeleteFlow deletes a record behind a confirmation gate, then re-fetches
// the listing so the caller can re-render it.
type DeleteFlow struct {
	session *Session
	caller  Caller
	fe      Frontend
	state   FlowState
}

// NewDeleteFlow builds a DeleteFlow.
func NewDeleteFlow(session *Session, caller Caller, fe Frontend) *DeleteFlow {
	return &DeleteFlow{session: session, caller: caller, fe: fe}
}

// State reports the flow's current lifecycle state.
func (f *DeleteFlow) State() FlowState { return f.state }

// Run asks for confirmation, deletes, and returns the refreshed listing.
// A declined confirmation is not an error; nothing is called and the listing
// comes back nil.
func (f *DeleteFlow) Run(ctx context.Context, photoID string) ([]Photo, error) {
	if f.state == FlowSubmitting {
		return nil, ErrFlowBusy
	}
	f.state = FlowIdle
	if f.session.Current() == nil {
		f.fe.Alert("You must be signed in to delete a photo.")
		return nil, nil
	}
	if !f.fe.Confirm("Are you sure you want to delete this photo?") {
		return nil, nil
	}

	f.state = FlowSubmitting
	f.fe.Busy("Deleting...")

	if err := f.caller.Call(ctx, "deletephoto", map[string]string{"photoId": photoID}, nil); err != nil {
		return nil, f.failList(err)
	}

	var photos []Photo
	if err := f.caller.Call(ctx, "getphotos", nil, &photos); err != nil {
		return nil, f.failList(err)
	}

	f.state = FlowSucceeded
	f.fe.Restore()
	return photos, nil
}

func (f *DeleteFlow) failList(err error) error {
	f.fe.Restore()
	f.fe.Alert(err.Error())
	f.state = FlowFailed
	return err
}

type matchResult struct {
	PhotoID *string `json:"photoId"`
}

// SearchFlow resolves a captured image to an existing record via the visual
// matcher and navigates to its detail page.
type SearchFlow struct {
	session *Session
	caller  Caller
	fe      Frontend
	state   FlowState
}

// NewSearchFlow builds a SearchFlow.
func NewSearchFlow(session *Session, caller Caller, fe Frontend) *SearchFlow {
	return &SearchFlow{session: session, caller: caller, fe: fe}
}

// State reports the flow's current lifecycle state.
func (f *SearchFlow) State() FlowState { return f.state }

// Run sends the captured image and navigates to the matched photo. A null
// match is not an error: it alerts "no match" and restores the controls.
// The returned id is empty when nothing matched.
func (f *SearchFlow) Run(ctx context.Context, image []byte) (string, error) {
	if f.state == FlowSubmitting {
		return "", ErrFlowBusy
	}
	f.state = FlowIdle
	if f.session.Current() == nil {
		f.fe.Alert("You must be signed in to search.")
		return "", nil
	}
	if len(image) == 0 {
		f.fe.Alert("Please capture a photo first.")
		return "", nil
	}

	f.state = FlowSubmitting
	f.fe.Busy("Searching...")

	payload := map[string]string{"image": base64.StdEncoding.EncodeToString(image)}
	var res matchResult
	if err := f.caller.Call(ctx, "findphotobymatch", payload, &res); err != nil {
		f.fe.Restore()
		f.fe.Alert(err.Error())
		f.state = FlowFailed
		return "", err
	}

	if res.PhotoID == nil {
		f.fe.Alert("No matching photo found.")
		f.fe.Restore()
		f.state = FlowIdle
		return "", nil
	}

	f.state = FlowSucceeded
	f.fe.Navigate("/photo/" + *res.PhotoID)
	return *res.PhotoID, nil
}
