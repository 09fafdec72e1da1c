package importbundle

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/jinzhu/gorm"
	"github.com/tealeg/xlsx"

	"rvmtrack_backend/app/core"
	web3socket "rvmtrack_backend/app/websocket"
)

// ImportController owns the spreadsheet import surface. The heavy lifting
// lives in the classifier, cleaner and merge engine, the controller wires
// upload, progress reporting, audit log and mail notification around them.
type ImportController struct {
	core.Controller
	ormDB *gorm.DB
}

func NewImportController(ormDB *gorm.DB, Users *map[string]core.User) *ImportController {
	c := &ImportController{
		Controller: core.Controller{Users: Users},
		ormDB:      ormDB,
	}

	if core.Config.Database.DoAutoMigrate {
		ormDB.AutoMigrate(&ImportLog{})
	}

	return c
}

// ImportRoutersHandler accepts an xlsx upload and runs the full pipeline.
// The response is always the run report, partial failures answer 200 with
// Success false and the error list filled.
func (c *ImportController) ImportRoutersHandler(w http.ResponseWriter, r *http.Request) {
	ok, user := c.GetUser(w, r)
	if !ok {
		return
	}

	filePath, err := c.saveImportFile(r)
	if err != nil {
		c.HandleError(err, w)
		return
	}
	strict := r.FormValue("strict") == "true"

	progress := func(percent int, message string) {
		web3socket.SendImportProgress(user.ID, percent, message)
	}
	report, err := c.importRoutersFromExcel(filePath, strict, progress)
	if err != nil {
		c.HandleError(err, w)
		return
	}

	importLog := ImportLog{
		UserId:       user.ID,
		FileName:     filepath.Base(filePath),
		TotalRows:    report.TotalRows,
		NewCount:     report.NewCount,
		UpdatedCount: report.UpdatedCount,
		ErrorCount:   report.ErrorCount,
		Success:      report.Success,
	}
	if err := c.ormDB.Set("gorm:save_associations", false).Create(&importLog).Error; err != nil {
		log.Println(err)
	}

	go c.sendImportReportMail(user, importLog.FileName, report)

	go web3socket.SendBroadCastWebsocketDataInfoMessage("Import finished", web3socket.Websocket_Update, web3socket.Websocket_Import, importLog.ID, nil)
	c.SendJSON(w, report, http.StatusOK)
}

// SuggestColumnsHandler rates one ad-hoc header against every known field,
// used by the frontend for manual column mapping.
func (c *ImportController) SuggestColumnsHandler(w http.ResponseWriter, r *http.Request) {
	if ok, _ := c.GetUser(w, r); !ok {
		return
	}

	request := struct {
		Header string `json:"header"`
	}{}
	if err := c.GetContent(&request, r); err != nil {
		c.HandleError(err, w)
		return
	}
	c.SendJSON(w, SuggestFields(request.Header), http.StatusOK)
}

// GetImportLogsHandler lists past import runs, newest first.
func (c *ImportController) GetImportLogsHandler(w http.ResponseWriter, r *http.Request) {
	if ok, _ := c.GetUser(w, r); !ok {
		return
	}

	paging := c.GetPaging(r.URL.Query())
	importLogs := ImportLogs{}
	c.ormDB.Model(&ImportLog{}).Count(&paging.TotalCount)
	if err := c.ormDB.Preload("User").Order("created_at DESC").Limit(paging.Limit).Offset(paging.Offset).Find(&importLogs).Error; err != nil {
		c.HandleError(err, w)
		return
	}
	c.SendJSONPaging(w, r, paging, importLogs, http.StatusOK)
}

// importRoutersFromExcel runs decode, classification, per-row validation
// and the merge over the first sheet of the uploaded workbook. Progress
// moves from 0 to 95 while rows are processed and hits 100 only once the
// report is complete.
func (c *ImportController) importRoutersFromExcel(fileName string, strict bool, progress ProgressFunc) (*ImportReport, error) {
	f, err := xlsx.OpenFile(fileName)
	if err != nil {
		return nil, err
	}
	if len(f.Sheets) == 0 {
		return nil, fmt.Errorf("%s contains no sheets", filepath.Base(fileName))
	}

	progress(2, "reading spreadsheet")
	data, err := DecodeSheet(f.Sheets[0])
	if err != nil {
		return nil, err
	}

	matches := DetectColumns(data.Headers)
	progress(5, "columns classified")

	engine, err := NewMergeEngine(NewGormInventoryStore(c.ormDB))
	if err != nil {
		return nil, err
	}

	validationErrors := []ImportError{}
	warnings := []ImportWarning{}
	validationErrorCount := 0
	for i, raw := range data.Rows {
		rowNr := data.RowNumbers[i]
		row := MapRowToRouter(raw, matches)
		validation := ValidateRouterRow(row, rowNr)
		warnings = append(warnings, validation.Warnings...)
		if strict && validation.CleanedData.Imei != "" && !IsValidImeiChecksum(validation.CleanedData.Imei) {
			warnings = append(warnings, ImportWarning{
				Row:     rowNr,
				Field:   string(FieldImei),
				Message: "IMEI fails the Luhn checksum",
				Value:   validation.CleanedData.Imei,
			})
		}
		if !validation.IsValid {
			validationErrors = append(validationErrors, validation.Errors...)
			validationErrorCount++
		} else {
			engine.MergeRow(validation.CleanedData, rowNr)
		}
		progress(5+90*(i+1)/len(data.Rows), fmt.Sprintf("processed row %d of %d", i+1, len(data.Rows)))
	}

	result := engine.Result()
	report := ImportReport{
		TotalRows:       len(data.Rows),
		NewCount:        result.NewCount,
		UpdatedCount:    result.UpdatedCount,
		ErrorCount:      validationErrorCount + result.ErrorCount,
		SkippedCount:    validationErrorCount + result.ErrorCount,
		CreatedRvmUnits: result.CreatedRvmUnits,
		CreatedSimCards: result.CreatedSimCards,
		ColumnMappings:  matches,
		HeaderRowIndex:  data.HeaderRowIndex,
	}
	report.Success = report.ErrorCount == 0
	report.Errors = buildReportErrors(validationErrors, result.Errors)
	report.Warnings = buildReportWarnings(warnings, result.Warnings)

	progress(100, "import finished")
	return &report, nil
}

// buildReportErrors flattens and caps the collected errors for transport.
func buildReportErrors(validationErrors []ImportError, mergeErrors []ImportError) []ImportReportError {
	reportErrors := []ImportReportError{}
	for _, importError := range append(validationErrors, mergeErrors...) {
		if len(reportErrors) >= maxReportErrors {
			break
		}
		message := importError.Message
		if importError.Field != "" && importError.Field != "general" {
			message = fmt.Sprintf("%s: %s", importError.Field, message)
		}
		reportErrors = append(reportErrors, ImportReportError{Row: importError.Row, Message: message})
	}
	return reportErrors
}

func buildReportWarnings(validationWarnings []ImportWarning, mergeWarnings []ImportWarning) []ImportReportError {
	reportWarnings := []ImportReportError{}
	for _, warning := range append(validationWarnings, mergeWarnings...) {
		if len(reportWarnings) >= maxReportErrors {
			break
		}
		message := warning.Message
		if warning.Field != "" {
			message = fmt.Sprintf("%s: %s", warning.Field, message)
		}
		reportWarnings = append(reportWarnings, ImportReportError{Row: warning.Row, Message: message})
	}
	return reportWarnings
}

func (c *ImportController) sendImportReportMail(user *core.User, fileName string, report *ImportReport) {
	recipients := core.Config.MailServer.ImportRecipients
	if len(recipients) == 0 {
		return
	}

	state := "completed"
	if !report.Success {
		state = "completed with errors"
	}
	subject := fmt.Sprintf("Router import %s: %s", state, fileName)

	var body strings.Builder
	fmt.Fprintf(&body, "Import of %s by %s\n\n", fileName, user.Username)
	fmt.Fprintf(&body, "Rows: %d\nNew: %d\nUpdated: %d\nErrors: %d\n", report.TotalRows, report.NewCount, report.UpdatedCount, report.ErrorCount)
	if len(report.CreatedRvmUnits) > 0 {
		fmt.Fprintf(&body, "New RVM units: %s\n", strings.Join(report.CreatedRvmUnits, ", "))
	}
	if len(report.CreatedSimCards) > 0 {
		fmt.Fprintf(&body, "New SIM cards: %s\n", strings.Join(report.CreatedSimCards, ", "))
	}
	for _, reportError := range report.Errors {
		fmt.Fprintf(&body, "Row %d: %s\n", reportError.Row, reportError.Message)
	}

	if err := core.SendMail(core.Config.MailServer.Sender, recipients, subject, body.String(), nil); err != nil {
		log.Println(err)
	}
}

func (c *ImportController) saveImportFile(r *http.Request) (string, error) {
	tmpPath := c.GetTmpUploadPath()
	if err := os.MkdirAll(tmpPath, 0777); err != nil {
		log.Println(err)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return "", err
	}

	filePath := ""
	for _, fheaders := range r.MultipartForm.File {
		for _, hdr := range fheaders {
			infile, err := hdr.Open()
			if err != nil {
				log.Println(err)
				return "", err
			}
			pos := strings.LastIndex(hdr.Filename, "/")
			filePath = fmt.Sprintf("%s%s", tmpPath, hdr.Filename[pos+1:])
			outfile, err := os.Create(filePath)
			if err != nil {
				log.Println(err)
				return "", err
			}
			if _, err = io.Copy(outfile, infile); err != nil {
				log.Println(err)
				return "", err
			}
			outfile.Close()
			infile.Close()
		}
	}
	if filePath == "" {
		return "", fmt.Errorf("no file uploaded")
	}
	return filePath, nil
}
