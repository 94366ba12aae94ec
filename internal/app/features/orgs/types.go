package orgs

type createRequest struct {
	OrganizationName string `json:"organization_name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
}

type updateRequest struct {
	OrganizationName string `json:"organization_name,omitempty"`
	Email            string `json:"email,omitempty"`
	Password         string `json:"password,omitempty"`
}

type statusResponse struct {
	Status       string `json:"status"`
	Organization string `json:"organization,omitempty"`
}
