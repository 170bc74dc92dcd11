// services/importer.go
package services

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"crm-master-backend/models"
	"crm-master-backend/utils"
)

// fieldSynonyms maps a logical field to header fragments that select it.
// Matching is case-insensitive substring against the imported header cell.
// Order matters: more specific fields must be tried before generic ones
// ("contact email" has to win over "name").
type fieldSynonyms struct {
	field    string
	synonyms []string
}

var customerFields = []fieldSynonyms{
	{"contactEmail", []string{"email", "邮箱"}},
	{"contactPhone", []string{"phone", "tel", "电话"}},
	{"contactName", []string{"contact", "联系人"}},
	{"followUpStatus", []string{"follow", "跟进"}},
	{"status", []string{"status", "状态"}},
	{"region", []string{"region", "area", "地区", "区域"}},
	{"rank", []string{"rank", "tier", "级别", "等级"}},
	{"productSummary", []string{"product", "summary", "产品"}},
	{"tags", []string{"tag", "exhibition", "展会", "标签"}},
	{"name", []string{"customer", "name", "客户", "名称"}},
}

var sampleFields = []fieldSynonyms{
	{"customerName", []string{"customer", "客户"}},
	{"crystalType", []string{"crystal", "晶体", "材料"}},
	{"categories", []string{"categor", "类别", "分类"}},
	{"form", []string{"form", "形态"}},
	{"originalSize", []string{"original", "原始", "原粒度"}},
	{"processedSize", []string{"processed", "加工", "目标粒度"}},
	{"nickname", []string{"nickname", "别名", "昵称"}},
	{"testStatus", []string{"test", "测试"}},
	{"status", []string{"status", "状态"}},
	{"nextActionDate", []string{"next", "计划日期", "下次"}},
	{"upcomingPlan", []string{"plan", "计划"}},
	{"statusDetails", []string{"detail", "history", "记录", "历史"}},
}

// mapHeader assigns each column index a field name, best-effort. Columns
// matching nothing are ignored; a field claimed twice keeps its first column.
func mapHeader(header []string, fields []fieldSynonyms) map[int]string {
	columns := make(map[int]string)
	claimed := make(map[string]bool)
	for col, cell := range header {
		lower := strings.ToLower(strings.TrimSpace(cell))
		if lower == "" {
			continue
		}
		for _, f := range fields {
			if claimed[f.field] {
				continue
			}
			matched := false
			for _, syn := range f.synonyms {
				if strings.Contains(lower, strings.ToLower(syn)) {
					matched = true
					break
				}
			}
			if matched {
				columns[col] = f.field
				claimed[f.field] = true
				break
			}
		}
	}
	return columns
}

// ReadTSV parses tab-separated text leniently: ragged rows are accepted,
// quoting rules are relaxed the way spreadsheet exports need.
func ReadTSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func rowValues(row []string, columns map[int]string) map[string]string {
	values := make(map[string]string)
	for col, field := range columns {
		if v := cellAt(row, col); v != "" {
			values[field] = v
		}
	}
	return values
}

func splitList(s string) models.StringList {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == ',' || r == '、' || r == '，' || r == ';'
	})
	var out models.StringList
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ParseCustomerRows turns imported TSV rows (first row = header) into
// customer records. Rows with an empty first cell are dropped; absent fields
// take fixed defaults, never an error.
func ParseCustomerRows(rows [][]string) []models.Customer {
	if len(rows) < 2 {
		return nil
	}
	columns := mapHeader(rows[0], customerFields)

	var customers []models.Customer
	for _, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		v := rowValues(row, columns)
		name := v["name"]
		if name == "" {
			// header had no usable name column; the first cell stands in
			name = strings.TrimSpace(row[0])
		}

		rank := 3
		if n, err := strconv.Atoi(v["rank"]); err == nil && n >= 1 && n <= 5 {
			rank = n
		}

		customer := models.Customer{
			Name:           name,
			Region:         splitList(v["region"]),
			Rank:           rank,
			Status:         utils.CanonicalTag(v["status"]),
			FollowUpStatus: utils.CanonicalTag(v["followUpStatus"]),
			ProductSummary: v["productSummary"],
		}
		if customer.Status == "" {
			customer.Status = models.CustomerStatusPotential
		}
		if customer.FollowUpStatus == "" {
			customer.FollowUpStatus = models.FollowUpNoAction
		}
		for _, tag := range splitList(v["tags"]) {
			customer.Tags = append(customer.Tags, utils.CanonicalTag(tag))
		}
		if v["contactName"] != "" || v["contactEmail"] != "" || v["contactPhone"] != "" {
			customer.Contacts = append(customer.Contacts, models.Contact{
				Name:      v["contactName"],
				Email:     v["contactEmail"],
				Phone:     v["contactPhone"],
				IsPrimary: true,
			})
		}
		customers = append(customers, customer)
	}
	return customers
}

// ParseSampleRows turns imported TSV rows into sample records. Customer ids,
// indexes and derived names are assigned later by AttachSamples.
func ParseSampleRows(rows [][]string) []models.Sample {
	if len(rows) < 2 {
		return nil
	}
	columns := mapHeader(rows[0], sampleFields)

	var samples []models.Sample
	for _, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		v := rowValues(row, columns)

		sample := models.Sample{
			CustomerName:  v["customerName"],
			CrystalType:   v["crystalType"],
			Categories:    splitList(v["categories"]),
			Form:          v["form"],
			OriginalSize:  v["originalSize"],
			ProcessedSize: v["processedSize"],
			Nickname:      v["nickname"],
			Status:        utils.CanonicalTag(v["status"]),
			TestStatus:    utils.CanonicalTag(v["testStatus"]),
			UpcomingPlan:  v["upcomingPlan"],
			StatusDetails: v["statusDetails"],
		}
		if sample.CustomerName == "" {
			sample.CustomerName = strings.TrimSpace(row[0])
		}
		if sample.Status == "" {
			sample.Status = models.SampleStatusPreparing
		}
		if sample.TestStatus == "" {
			sample.TestStatus = models.TestStatusOngoing
		}
		if t, ok := utils.ParseDate(v["nextActionDate"]); ok {
			sample.NextActionDate = &t
		}
		now := time.Now()
		sample.LastStatusDate = &now
		samples = append(samples, sample)
	}
	return samples
}

// CustomerExportHeader is the fixed column list for customer exports.
var CustomerExportHeader = []string{
	"Customer", "Region", "Rank", "Status", "Follow-up Status",
	"Product Summary", "Exhibition Tags", "Contact", "Email", "Phone",
	"Last Contact", "Last Customer Reply", "Last My Reply",
}

// SampleExportHeader is the fixed column list for sample exports.
var SampleExportHeader = []string{
	"Customer", "Sample No.", "Sample Name", "Crystal", "Categories", "Form",
	"Original Size", "Processed Size", "Nickname", "Status", "Test Status",
	"Next Action", "Upcoming Plan", "Status Details",
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(utils.DateLayout)
}

func CustomerExportRows(customers []models.Customer) [][]string {
	rows := make([][]string, 0, len(customers))
	for i := range customers {
		c := &customers[i]
		var contactName, contactEmail, contactPhone string
		for j := range c.Contacts {
			if c.Contacts[j].IsPrimary || contactName == "" {
				contactName = c.Contacts[j].Name
				contactEmail = c.Contacts[j].Email
				contactPhone = c.Contacts[j].Phone
			}
			if c.Contacts[j].IsPrimary {
				break
			}
		}
		rows = append(rows, []string{
			c.Name,
			strings.Join(c.Region, "/"),
			strconv.Itoa(c.Rank),
			c.Status,
			c.FollowUpStatus,
			c.ProductSummary,
			strings.Join(c.Tags, "/"),
			contactName,
			contactEmail,
			contactPhone,
			formatDate(c.LastContactDate),
			formatDate(c.LastCustomerReplyDate),
			formatDate(c.LastMyReplyDate),
		})
	}
	return rows
}

func SampleExportRows(samples []models.Sample) [][]string {
	rows := make([][]string, 0, len(samples))
	for i := range samples {
		s := &samples[i]
		rows = append(rows, []string{
			s.CustomerName,
			strconv.Itoa(s.SampleIndex),
			s.SampleName,
			s.CrystalType,
			strings.Join(s.Categories, "/"),
			s.Form,
			s.OriginalSize,
			s.ProcessedSize,
			s.Nickname,
			s.Status,
			s.TestStatus,
			formatDate(s.NextActionDate),
			s.UpcomingPlan,
			s.StatusDetails,
		})
	}
	return rows
}

// WriteTSV writes a header plus rows as tab-separated text.
func WriteTSV(w io.Writer, header []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	writer.Comma = '\t'
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
