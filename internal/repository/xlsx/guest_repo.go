package xlsx

import (
	"fmt"
	"sync"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/wedding-trivia/internal/domain/entity"
	apperrors "github.com/yourusername/wedding-trivia/internal/pkg/errors"
)

// Колонки RSVP-книги в порядке entity.GuestFieldNames()
const (
	colAccessCode = iota
	colMaxGuests
	colPartyName
	colDietary
	colHotel
	colQuestions
	colRawNames
)

// GuestRepo хранит RSVP-записи гостей в книге Excel.
// Книга открывается на каждую операцию; конкурентный доступ к файлу
// сериализуется мьютексом.
type GuestRepo struct {
	path      string
	sheetName string
	mu        sync.Mutex
}

// NewGuestRepo создает RSVP-репозиторий для указанной книги
func NewGuestRepo(path, sheetName string) *GuestRepo {
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	return &GuestRepo{path: path, sheetName: sheetName}
}

// GetByAccessCode ищет запись гостя по коду доступа в первой колонке
func (r *GuestRepo) GetByAccessCode(accessCode string) (*entity.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open RSVP workbook %s: %w", r.path, err)
	}
	defer f.Close()

	_, guest, err := r.findGuestRow(f, accessCode)
	if err != nil {
		return nil, err
	}
	return guest, nil
}

// Update перезаписывает строку гостя, найденную по коду доступа
func (r *GuestRepo) Update(guest *entity.Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return fmt.Errorf("failed to open RSVP workbook %s: %w", r.path, err)
	}
	defer f.Close()

	rowNum, _, err := r.findGuestRow(f, guest.AccessCode)
	if err != nil {
		return err
	}

	row := []interface{}{
		guest.AccessCode,
		guest.MaxGuests,
		guest.PartyName,
		guest.DietaryRestrictions,
		guest.HotelAccommodations,
		guest.Questions,
		guest.RawNames,
	}
	cell := fmt.Sprintf("A%d", rowNum)
	if err := f.SetSheetRow(r.sheetName, cell, &row); err != nil {
		return fmt.Errorf("failed to write guest row %d: %w", rowNum, err)
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save RSVP workbook: %w", err)
	}
	return nil
}

// findGuestRow возвращает номер строки (1-based) и запись гостя.
// Первая строка книги — заголовок.
func (r *GuestRepo) findGuestRow(f *excelize.File, accessCode string) (int, *entity.Guest, error) {
	rows, err := f.GetRows(r.sheetName)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read sheet %s: %w", r.sheetName, err)
	}

	for i, row := range rows {
		if i == 0 {
			continue
		}
		if cellAt(row, colAccessCode) != accessCode {
			continue
		}
		guest := &entity.Guest{
			AccessCode:          cellAt(row, colAccessCode),
			MaxGuests:           cellAt(row, colMaxGuests),
			PartyName:           cellAt(row, colPartyName),
			DietaryRestrictions: cellAt(row, colDietary),
			HotelAccommodations: cellAt(row, colHotel),
			Questions:           cellAt(row, colQuestions),
			RawNames:            cellAt(row, colRawNames),
		}
		return i + 1, guest, nil
	}

	return 0, nil, fmt.Errorf("%w: guest with access code %q", apperrors.ErrNotFound, accessCode)
}
