package handler

import (
	"net/http"

	"github.com/desichan/desichan/shared/api"
	"github.com/desichan/desichan/shared/domain"
	"github.com/desichan/desichan/shared/utils"
)

func (h *Handler) FileReport(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	var body api.CreateReportRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err := h.reports.File(r.Context(), domain.ReportCreationData{
		Target:   domain.ReportTarget{Kind: body.ContentType, Id: body.ContentId},
		Reporter: user.Id,
		Reason:   body.Reason,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.CreatedResponse{Id: id})
}
