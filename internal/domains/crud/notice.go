package crud

import (
	"strings"

	"kitabcloud-admin/internal/domains/entity"
	"kitabcloud-admin/internal/infrastructure/apiclient"
)

// NoticeKind classifies a user visible notification.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeInfo    NoticeKind = "info"
)

// Notice is a transient notification shown after an action.
type Notice struct {
	Kind    NoticeKind
	Message string
}

func (n Notice) IsZero() bool { return n.Message == "" }

func success(msg string) Notice { return Notice{Kind: NoticeSuccess, Message: msg} }
func failure(msg string) Notice { return Notice{Kind: NoticeError, Message: msg} }

// ========================================
// MESSAGES
// ========================================
// Failure messages prefer the server's own message and fall back to a
// generic sentence naming the resource.

const StatusUpdated = "Status updated successfully"

func CreatedMessage(d *entity.Descriptor) string { return d.Singular + " created successfully" }
func UpdatedMessage(d *entity.Descriptor) string { return d.Singular + " updated successfully" }
func DeletedMessage(d *entity.Descriptor) string { return d.Singular + " deleted successfully" }

func CreateFailed(d *entity.Descriptor, err error) string {
	return apiclient.MessageOf(err, "Failed to create "+noun(d))
}

func UpdateFailed(d *entity.Descriptor, err error) string {
	return apiclient.MessageOf(err, "Failed to update "+noun(d))
}

func DeleteFailed(d *entity.Descriptor, err error) string {
	return apiclient.MessageOf(err, "Failed to delete "+noun(d))
}

func StatusFailed(err error) string {
	return apiclient.MessageOf(err, "Failed to update status")
}

func FetchFailed(d *entity.Descriptor) string {
	return "Failed to fetch " + strings.ToLower(d.Plural)
}

func DetailsFailed(d *entity.Descriptor) string {
	return "Failed to fetch " + noun(d) + " details"
}

func noun(d *entity.Descriptor) string { return strings.ToLower(d.Singular) }
