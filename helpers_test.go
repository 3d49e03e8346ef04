package crptapi

import (
	"context"
	"sync"
)

// fakeTransport records requests and answers with a fixed response or error
type fakeTransport struct {
	mu       sync.Mutex
	requests []*Request
	status   int
	body     []byte
	err      error
}

func (f *fakeTransport) Send(ctx context.Context, req *Request) (*Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	status := f.status
	if status == 0 {
		status = 200
	}
	return &Response{StatusCode: status, Body: f.body}, nil
}

func (f *fakeTransport) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func newTestDocument() *Document {
	return &Document{
		Description:    Description{ParticipantINN: "1234567890"},
		DocID:          "example_id",
		DocStatus:      "example_status",
		DocType:        DocTypeIntroduceGoods,
		ImportRequest:  true,
		OwnerINN:       "1234567890",
		ParticipantINN: "0987654321",
		ProducerINN:    "1122334455",
		ProductionDate: "2020-01-23",
		ProductionType: "example_type",
		Products: []Product{
			{
				CertificateDocument:       "example_document",
				CertificateDocumentDate:   "2020-01-23",
				CertificateDocumentNumber: "12345",
				OwnerINN:                  "1234567890",
				ProducerINN:               "1122334455",
				ProductionDate:            "2020-01-23",
				TNVEDCode:                 "example_code",
				UITCode:                   "example_uit_code",
				UITUCode:                  "example_uitu_code",
			},
		},
		RegDate:   "2020-01-23",
		RegNumber: "example_reg_number",
	}
}
