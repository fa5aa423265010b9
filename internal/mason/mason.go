// Package mason builds response documents in the Mason hypermedia format.
// A document is plain data: arbitrary application fields plus the reserved
// @namespaces, @controls and @error keys. Building performs no I/O.
package mason

import "github.com/gamescore-service/internal/schema"

// MediaType is the content type of every Mason response body.
const MediaType = "application/vnd.mason+json"

// Control is a machine-readable action descriptor attached to a document.
type Control struct {
	Href     string         `json:"href"`
	Method   string         `json:"method,omitempty"`
	Encoding string         `json:"encoding,omitempty"`
	Title    string         `json:"title,omitempty"`
	Schema   *schema.Schema `json:"schema,omitempty"`
}

// Namespace declares where a set of link relations is documented.
type Namespace struct {
	Name string `json:"name"`
}

// ErrorObject is the document-level error envelope. Mason allows multiple
// messages; this API always carries exactly one.
type ErrorObject struct {
	Message  string   `json:"@message"`
	Messages []string `json:"@messages"`
}

// Document is a Mason object under construction. It serializes directly
// with encoding/json.
type Document map[string]any

// New creates a document pre-populated with application fields.
func New(fields map[string]any) Document {
	doc := Document{}
	for k, v := range fields {
		doc[k] = v
	}
	return doc
}

// AddNamespace registers a link-relation namespace. Registering the same
// prefix twice overwrites the earlier URI.
func (d Document) AddNamespace(prefix, uri string) {
	ns, ok := d["@namespaces"].(map[string]Namespace)
	if !ok {
		ns = map[string]Namespace{}
		d["@namespaces"] = ns
	}
	ns[prefix] = Namespace{Name: uri}
}

// AddControl attaches an action descriptor under the given relation name.
func (d Document) AddControl(name string, ctrl Control) {
	controls, ok := d["@controls"].(map[string]Control)
	if !ok {
		controls = map[string]Control{}
		d["@controls"] = controls
	}
	controls[name] = ctrl
}

// AddError sets the document-level error object. Error documents carry no
// item data, only the envelope and a profile control.
func (d Document) AddError(title, detail string) {
	d["@error"] = ErrorObject{
		Message:  title,
		Messages: []string{detail},
	}
}

// AppendItem adds an embedded sub-document to the document's "items" list.
func (d Document) AppendItem(item Document) {
	items, _ := d["items"].([]Document)
	d["items"] = append(items, item)
}
