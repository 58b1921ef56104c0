package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"gorm.io/gorm"

	config "github.com/Yash790975/vidhyakendra-backend-sub000/configs"
	"github.com/Yash790975/vidhyakendra-backend-sub000/models"
	"github.com/Yash790975/vidhyakendra-backend-sub000/utils"
)

// GenerateActivationReceipt renders a payment receipt PDF for an activated
// transaction and stores its upload URL on the ledger entry. Best-effort: any
// failure is logged and the activation stands.
func GenerateActivationReceipt(db *gorm.DB, transactionID uuid.UUID) {
	if config.Config("CLOUDINARY_URL") == "" {
		return
	}

	var txn models.PaymentTransaction
	if err := db.First(&txn, "id = ?", transactionID).Error; err != nil {
		log.Printf("🔥 Receipt: failed to load transaction %s: %v", transactionID, err)
		return
	}

	var institute models.Institute
	if err := db.Where("transaction_reference_id = ?", txn.ReferenceID).First(&institute).Error; err != nil {
		log.Printf("🔥 Receipt: failed to load institute for %s: %v", txn.ReferenceID, err)
		return
	}

	htmlData, err := renderReceiptHTML(txn, institute)
	if err != nil {
		log.Printf("🔥 Receipt: failed to render HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Receipt: failed to generate PDF: %v", err)
		return
	}

	uploadURL, err := uploadReceipt(pdfBytes, txn.ReferenceID)
	if err != nil {
		log.Printf("🔥 Receipt: failed to upload: %v", err)
		return
	}

	if err := db.Model(&models.PaymentTransaction{}).Where("id = ?", txn.ID).Update("receipt_url", uploadURL).Error; err != nil {
		log.Printf("🔥 Receipt: failed to store receipt url for %s: %v", txn.ReferenceID, err)
		return
	}
	log.Printf("✅ Receipt generated for transaction %s", txn.ReferenceID)
}

func renderReceiptHTML(txn models.PaymentTransaction, institute models.Institute) (string, error) {
	tmpl, err := template.ParseFiles("templates/receipt.html")
	if err != nil {
		return "", err
	}

	data := struct {
		InstituteName string
		InstituteCode string
		ReferenceID   string
		Amount        float64
		Currency      string
		IssuedOn      string
	}{
		InstituteName: institute.Name,
		InstituteCode: institute.Code,
		ReferenceID:   txn.ReferenceID,
		Amount:        utils.NormalizeAmount(txn.Amount),
		Currency:      txn.Currency,
		IssuedOn:      time.Now().Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReceipt(fileBytes []byte, referenceID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipts/%s", referenceID),
		Folder:       "vidhyakendra_receipts",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}
	return uploadResult.SecureURL, nil
}
