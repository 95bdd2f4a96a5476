package httpapi

import (
	"net/http"
	"sync/atomic"

	"callscout-engine/internal/config"
)

type ConfigHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cur := h.CfgVal.Load().(config.Config)
	writeJSON(w, cur)
}
