package web

import (
	"encoding/base64"
	"encoding/json"

	"github.com/gin-gonic/gin"

	"kitabcloud-admin/internal/domains/crud"
	"kitabcloud-admin/pkg/logger"
)

const flashCookie = "kitab_admin_flash"

// setFlash carries notices across the next redirect.
func (h *Handler) setFlash(c *gin.Context, notices ...crud.Notice) {
	kept := notices[:0:0]
	for _, n := range notices {
		if !n.IsZero() {
			kept = append(kept, n)
		}
	}
	if len(kept) == 0 {
		return
	}

	raw, err := json.Marshal(kept)
	if err != nil {
		logger.Warn("flash encode failed", map[string]interface{}{"error": err.Error()})
		return
	}
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(raw), 60, "/", "", h.secure, true)
}

// popFlash reads and clears the pending notices.
func (h *Handler) popFlash(c *gin.Context) []crud.Notice {
	v, err := c.Cookie(flashCookie)
	if err != nil || v == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", h.secure, true)

	raw, err := base64.RawURLEncoding.DecodeString(v)
	if err != nil {
		return nil
	}
	var notices []crud.Notice
	if err := json.Unmarshal(raw, &notices); err != nil {
		return nil
	}
	return notices
}

func successNotice(msg string) crud.Notice {
	return crud.Notice{Kind: crud.NoticeSuccess, Message: msg}
}

func errorNotice(msg string) crud.Notice {
	return crud.Notice{Kind: crud.NoticeError, Message: msg}
}
