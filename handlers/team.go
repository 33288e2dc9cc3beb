package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/highq/crm-backend/database"
)

// TeamHandler serves the team directory.
type TeamHandler struct {
	directory *database.DirectoryService
}

func NewTeamHandler(directory *database.DirectoryService) *TeamHandler {
	return &TeamHandler{directory: directory}
}

// GetTeamMembers lists the whole directory.
func (h *TeamHandler) GetTeamMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.directory.Members()
	if err != nil {
		log.Printf("Error listing team members: %v", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, members)
}

// GetTeamMemberByID returns a single directory record.
func (h *TeamHandler) GetTeamMemberByID(w http.ResponseWriter, r *http.Request) {
	memberID := mux.Vars(r)["memberId"]

	member, ok := h.directory.Member(memberID)
	if !ok {
		writeError(w, http.StatusNotFound, "Team member not found.")
		return
	}
	writeJSON(w, http.StatusOK, member)
}
