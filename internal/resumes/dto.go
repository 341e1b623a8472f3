package resumes

import "careercraft-backend/resume/model"

type editorResponse struct {
	Template model.Template `json:"template"`
	Dirty    bool           `json:"dirty"`
	Resume   model.Record   `json:"resume"`
}

func toEditorResponse(cur Editing) editorResponse {
	return editorResponse{Template: cur.Template, Dirty: cur.Dirty, Resume: cur.Record}
}
