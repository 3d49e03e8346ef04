package crptapi

// DocTypeIntroduceGoods is the document type for introducing goods into circulation
const DocTypeIntroduceGoods = "LP_INTRODUCE_GOODS"

// Document is the body of a document creation request
type Document struct {
	Description    Description `json:"description"`
	DocID          string      `json:"doc_id"`
	DocStatus      string      `json:"doc_status"`
	DocType        string      `json:"doc_type"`
	ImportRequest  bool        `json:"importRequest"`
	OwnerINN       string      `json:"owner_inn"`
	ParticipantINN string      `json:"participant_inn"`
	ProducerINN    string      `json:"producer_inn"`
	ProductionDate string      `json:"production_date"`
	ProductionType string      `json:"production_type"`
	Products       []Product   `json:"products"`
	RegDate        string      `json:"reg_date"`
	RegNumber      string      `json:"reg_number"`
}

type Description struct {
	ParticipantINN string `json:"participantInn"`
}

type Product struct {
	CertificateDocument       string `json:"certificate_document"`
	CertificateDocumentDate   string `json:"certificate_document_date"`
	CertificateDocumentNumber string `json:"certificate_document_number"`
	OwnerINN                  string `json:"owner_inn"`
	ProducerINN               string `json:"producer_inn"`
	ProductionDate            string `json:"production_date"`
	TNVEDCode                 string `json:"tnved_code"`
	UITCode                   string `json:"uit_code"`
	UITUCode                  string `json:"uitu_code"`
}

// documentID is nil-safe, for logging
func documentID(doc *Document) string {
	if doc == nil {
		return ""
	}
	return doc.DocID
}
