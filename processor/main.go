package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"freight-app/config"
	"freight-app/database"
	"freight-app/models"
	"freight-app/services"
	"freight-app/services/upstream"

	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// Standalone rate-sheet processor. Agents drop shipment manifests named
// SHIPMENT_*.csv into the unprocessed folder; each row is priced against the
// upstream backend and a summary of the cheapest channel per shipment is
// mailed out. Processed files move to the processed folder, and FileLog
// keeps a re-dropped file from being priced twice.

type manifestRow struct {
	TrackingNumber string
	Region         string
	Qty            int
	Weight         float64
	DutyCode       string
	Port           string
}

type rateResult struct {
	Row         manifestRow
	ChannelName string
	Supplier    string
	TotalFee    float64
	Err         error
}

func dropFolder() string {
	if v := os.Getenv("RATE_SHEET_FOLDER"); v != "" {
		return v
	}
	return "rate-sheets/unprocessed"
}

func processedFolder() string {
	if v := os.Getenv("RATE_SHEET_PROCESSED_FOLDER"); v != "" {
		return v
	}
	return "rate-sheets/processed"
}

func checkUnprocessedFiles(db *gorm.DB, client *upstream.Client) {
	files, err := filepath.Glob(filepath.Join(dropFolder(), "*.csv"))
	if err != nil {
		log.Fatalf("failed to read drop folder: %v", err)
	}

	for _, file := range files {
		processFile(db, client, file)
	}
}

func processFile(db *gorm.DB, client *upstream.Client, filename string) {
	fileNameOnly := filepath.Base(filename)

	var existingFile models.FileLog
	if err := db.Where("filename = ?", fileNameOnly).First(&existingFile).Error; err == nil {
		log.Println("file already processed, skip:", filename)
		return
	}

	info, err := os.Stat(filename)
	if err != nil {
		log.Println("failed to stat file:", err)
		return
	}

	if !strings.HasPrefix(fileNameOnly, "SHIPMENT_") {
		log.Println("unrecognized file, skip:", fileNameOnly)
		return
	}

	log.Println("processing shipment manifest:", fileNameOnly)

	results, err := processShipmentCSV(client, filename)
	if err != nil {
		log.Println("failed to process manifest:", err)
		return
	}

	db.Create(&models.FileLog{Filename: fileNameOnly, DateModified: info.ModTime()})

	if err := sendRateSummary(fileNameOnly, results); err != nil {
		log.Println("failed to send rate summary:", err)
	}

	moveToProcessed(filename)
}

func processShipmentCSV(client *upstream.Client, filename string) ([]rateResult, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	file.Close()
	if err != nil {
		return nil, err
	}

	var results []rateResult
	seen := make(map[string]bool)
	for i, record := range records {
		if i == 0 {
			continue // skip header
		}
		if len(record) < 6 {
			log.Printf("row %d: insufficient columns, skip", i+1)
			continue
		}

		// Dedupe on the normalized key, but price with the value as written:
		// the backend gets the tracking number untouched.
		key := services.NormalizeKey(record[0])
		if key == "" || seen[key] {
			log.Printf("row %d: duplicate or empty tracking number, skip", i+1)
			continue
		}
		seen[key] = true

		qty, _ := strconv.Atoi(strings.TrimSpace(record[2]))
		weight, _ := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)

		row := manifestRow{
			TrackingNumber: strings.TrimSpace(record[0]),
			Region:         strings.ToUpper(strings.TrimSpace(record[1])),
			Qty:            qty,
			Weight:         weight,
			DutyCode:       strings.TrimSpace(record[4]),
			Port:           strings.TrimSpace(record[5]),
		}

		if !models.Region(row.Region).Valid() {
			results = append(results, rateResult{Row: row, Err: fmt.Errorf("unknown region %q", row.Region)})
			continue
		}

		results = append(results, priceRow(client, row))
	}

	return results, nil
}

func priceRow(client *upstream.Client, row manifestRow) rateResult {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	quotes, err := client.TryCalculate(ctx, upstream.TryCalculateRequest{
		TrackingNumber: row.TrackingNumber,
		Area:           row.Region,
		Qty:            row.Qty,
		Weight:         row.Weight,
		DutyCode:       row.DutyCode,
		Port:           row.Port,
	})
	if err != nil {
		return rateResult{Row: row, Err: err}
	}

	ranked := services.NormalizeQuotes(quotes)
	best := services.CheapestValid(ranked)
	if best < 0 {
		return rateResult{Row: row, Err: fmt.Errorf("no bookable channel")}
	}

	return rateResult{
		Row:         row,
		ChannelName: ranked[best].ChannelName,
		Supplier:    ranked[best].Supplier,
		TotalFee:    ranked[best].TotalFee,
	}
}

func sendRateSummary(filename string, results []rateResult) error {
	if config.SMTPUser == "" || config.NoticeEmail == "" {
		log.Println("smtp not configured, skipping rate summary mail")
		return nil
	}

	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString(fmt.Sprintf("<h3>Rate sheet processed: %s</h3>", filename))
	b.WriteString("<table border=\"1\" cellpadding=\"4\"><tr><th>Tracking</th><th>Region</th><th>Best Channel</th><th>Supplier</th><th>Fee</th></tr>")
	for _, r := range results {
		if r.Err != nil {
			b.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td><td colspan=\"3\">FAILED: %s</td></tr>",
				r.Row.TrackingNumber, r.Row.Region, r.Err.Error()))
			continue
		}
		b.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%.2f</td></tr>",
			r.Row.TrackingNumber, r.Row.Region, r.ChannelName, r.Supplier, r.TotalFee))
	}
	b.WriteString("</table>")
	b.WriteString("<p>This is an auto-generated email. Please do not reply.</p>")
	b.WriteString("</body></html>")

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPUser)
	msg.SetHeader("To", config.NoticeEmail)
	msg.SetHeader("Subject", "Rate sheet summary "+filename)
	msg.SetBody("text/html", b.String())

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword)
	return dialer.DialAndSend(msg)
}

func moveToProcessed(filename string) {
	dst := processedFolder()
	if _, err := os.Stat(dst); os.IsNotExist(err) {
		if err := os.MkdirAll(dst, os.ModePerm); err != nil {
			log.Fatalf("failed to create processed folder: %v", err)
		}
	}

	processedFilePath := filepath.Join(dst, filepath.Base(filename))
	if err := os.Rename(filename, processedFilePath); err != nil {
		log.Println("rename failed, falling back to copy and delete")
		if err := copyAndDeleteFile(filename, processedFilePath); err != nil {
			log.Fatalf("failed to move file to processed folder: %v", err)
		}
	}
}

func copyAndDeleteFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destinationFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destinationFile.Close()

	if _, err := io.Copy(destinationFile, sourceFile); err != nil {
		return err
	}

	return os.Remove(src)
}

func main() {
	config.LoadConfig()

	db, err := database.GetDBConnection(config.DBName)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	client := upstream.NewClient(config.UpstreamBaseURL)

	log.Println("rate-sheet processor running")
	checkUnprocessedFiles(db, client)
	log.Println("all rate sheets processed")
}
