package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stayseek/internal/domain/availability"
	domainproperty "stayseek/internal/domain/property"
	domainrange "stayseek/internal/domain/shared/daterange"
)

var ErrBookingNotFound = errors.New("mongo: booking not found")

// PropertyRepository stores property aggregates as single documents. City
// and tenant predicates run in Mongo; the textual and availability parts
// of the search predicate and the window trimming run Go-side so their
// semantics stay single-sourced in the domain package.
type PropertyRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{db: db, col: db.Collection("agg_property")}
}

func (r *PropertyRepository) Matching(ctx context.Context, params domainproperty.SearchParams) ([]*domainproperty.Property, error) {
	cursor, err := r.col.Find(ctx, bson.M{"city_id": int64(params.City)}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var matches []*domainproperty.Property
	for cursor.Next(ctx) {
		var doc propertyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		item := doc.toAggregate()
		if !item.HasVisibleRoom(params.Guests) {
			continue
		}
		if !params.MatchesName(item.Name) {
			continue
		}
		if !params.MatchesCategory(item.CategoryName) {
			continue
		}
		trimRecords(item, params.Window)
		matches = append(matches, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []*domainproperty.Property{}
	}
	return matches, nil
}

func (r *PropertyRepository) ByID(ctx context.Context, id domainproperty.PropertyID, window domainrange.DateRange) (*domainproperty.Property, error) {
	item, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	trimRecords(item, window)
	return item, nil
}

func (r *PropertyRepository) ForCalendar(ctx context.Context, id domainproperty.PropertyID, year int, month time.Month) (*domainproperty.Property, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	window := domainrange.DateRange{CheckIn: first, CheckOut: first.AddDate(0, 1, 0)}
	return r.ByID(ctx, id, window)
}

func (r *PropertyRepository) Get(ctx context.Context, id domainproperty.PropertyID) (*domainproperty.Property, error) {
	var doc propertyDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": int64(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainproperty.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *PropertyRepository) Owned(ctx context.Context, tenant domainproperty.TenantID, offset, limit int) ([]*domainproperty.Property, int, error) {
	filter := bson.M{"tenant_id": int64(tenant)}
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	page := make([]*domainproperty.Property, 0, limit)
	for cursor.Next(ctx) {
		var doc propertyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, err
		}
		page = append(page, doc.toAggregate())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}
	return page, int(total), nil
}

func (r *PropertyRepository) Insert(ctx context.Context, p *domainproperty.Property) error {
	id, err := nextSequence(ctx, r.db, "property")
	if err != nil {
		return err
	}
	p.ID = domainproperty.PropertyID(id)
	if err := r.assignIDs(ctx, p); err != nil {
		return err
	}
	_, err = r.col.InsertOne(ctx, newPropertyDocument(p))
	return err
}

func (r *PropertyRepository) Save(ctx context.Context, p *domainproperty.Property) error {
	if err := r.assignIDs(ctx, p); err != nil {
		return err
	}
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": int64(p.ID)}, newPropertyDocument(p))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainproperty.ErrNotFound
	}
	return nil
}

func (r *PropertyRepository) RecordBooking(ctx context.Context, propertyID domainproperty.PropertyID, roomID domainproperty.RoomID, b availability.Booking) error {
	item, err := r.Get(ctx, propertyID)
	if err != nil {
		return err
	}
	room, err := item.RoomByID(roomID)
	if err != nil {
		return err
	}
	replaced := false
	for i := range room.Bookings {
		if room.Bookings[i].ID == b.ID {
			room.Bookings[i] = b
			replaced = true
			break
		}
	}
	if !replaced {
		room.Bookings = append(room.Bookings, b)
	}
	return r.Save(ctx, item)
}

func (r *PropertyRepository) CancelBooking(ctx context.Context, propertyID domainproperty.PropertyID, roomID domainproperty.RoomID, bookingID int64) error {
	item, err := r.Get(ctx, propertyID)
	if err != nil {
		return err
	}
	room, err := item.RoomByID(roomID)
	if err != nil {
		return err
	}
	for i := range room.Bookings {
		if room.Bookings[i].ID == bookingID {
			room.Bookings[i].Status = availability.BookingCanceled
			return r.Save(ctx, item)
		}
	}
	return ErrBookingNotFound
}

// assignIDs backfills ids on freshly added rooms, blocks, rates and
// pictures from the shared sequence.
func (r *PropertyRepository) assignIDs(ctx context.Context, p *domainproperty.Property) error {
	next := func() (int64, error) { return nextSequence(ctx, r.db, "property_sub") }
	for i := range p.Rooms {
		room := &p.Rooms[i]
		if room.ID == 0 {
			id, err := next()
			if err != nil {
				return err
			}
			room.ID = domainproperty.RoomID(id)
		}
		for j := range room.Blocks {
			if room.Blocks[j].ID == 0 {
				id, err := next()
				if err != nil {
					return err
				}
				room.Blocks[j].ID = id
			}
		}
		for j := range room.Rates {
			if room.Rates[j].ID == 0 {
				id, err := next()
				if err != nil {
					return err
				}
				room.Rates[j].ID = id
			}
		}
	}
	for i := range p.Pictures {
		if p.Pictures[i].ID == 0 {
			id, err := next()
			if err != nil {
				return err
			}
			p.Pictures[i].ID = id
		}
	}
	return nil
}

// trimRecords drops records outside the window and canceled bookings,
// matching the pre-filter contract of the repository interface.
func trimRecords(p *domainproperty.Property, window domainrange.DateRange) {
	for i := range p.Rooms {
		room := &p.Rooms[i]
		bookings := room.Bookings[:0:0]
		for _, b := range room.Bookings {
			if b.Counts() && b.Overlaps(window) {
				bookings = append(bookings, b)
			}
		}
		room.Bookings = bookings
		blocks := room.Blocks[:0:0]
		for _, blk := range room.Blocks {
			if blk.Overlaps(window) {
				blocks = append(blocks, blk)
			}
		}
		room.Blocks = blocks
		rates := room.Rates[:0:0]
		for _, rate := range room.Rates {
			if rate.Overlaps(window) {
				rates = append(rates, rate)
			}
		}
		room.Rates = rates
	}
}

type propertyDocument struct {
	ID           int64             `bson:"_id"`
	Name         string            `bson:"name"`
	Description  string            `bson:"description"`
	Location     string            `bson:"location"`
	CityID       int64             `bson:"city_id"`
	CategoryID   int64             `bson:"category_id"`
	CategoryName string            `bson:"category_name"`
	TenantID     int64             `bson:"tenant_id"`
	Pictures     []pictureDocument `bson:"pictures"`
	Rooms        []roomDocument    `bson:"rooms"`
	CreatedAt    int64             `bson:"created_at"`
	UpdatedAt    int64             `bson:"updated_at"`
}

type pictureDocument struct {
	ID     int64  `bson:"id"`
	Path   string `bson:"path"`
	IsMain bool   `bson:"is_main"`
}

type roomDocument struct {
	ID          int64             `bson:"id"`
	Name        string            `bson:"name"`
	Description string            `bson:"description"`
	PriceCents  int64             `bson:"price_cents"`
	MaxGuests   int               `bson:"max_guests"`
	Quantity    int               `bson:"quantity"`
	Picture     string            `bson:"picture"`
	Bookings    []bookingDocument `bson:"bookings"`
	Blocks      []blockDocument   `bson:"blocks"`
	Rates       []rateDocument    `bson:"rates"`
}

type bookingDocument struct {
	ID       int64  `bson:"id"`
	CheckIn  int64  `bson:"check_in"`
	CheckOut int64  `bson:"check_out"`
	Status   string `bson:"status"`
}

type blockDocument struct {
	ID     int64  `bson:"id"`
	Start  int64  `bson:"start"`
	End    int64  `bson:"end"`
	Reason string `bson:"reason"`
}

type rateDocument struct {
	ID         int64 `bson:"id"`
	Start      int64 `bson:"start"`
	End        int64 `bson:"end"`
	PriceCents int64 `bson:"price_cents"`
}

func newPropertyDocument(p *domainproperty.Property) propertyDocument {
	doc := propertyDocument{
		ID:           int64(p.ID),
		Name:         p.Name,
		Description:  p.Description,
		Location:     p.Location,
		CityID:       int64(p.CityID),
		CategoryID:   int64(p.CategoryID),
		CategoryName: p.CategoryName,
		TenantID:     int64(p.Tenant),
		CreatedAt:    p.CreatedAt.UnixMilli(),
		UpdatedAt:    p.UpdatedAt.UnixMilli(),
	}
	for _, pic := range p.Pictures {
		doc.Pictures = append(doc.Pictures, pictureDocument{ID: pic.ID, Path: pic.Path, IsMain: pic.IsMain})
	}
	for _, room := range p.Rooms {
		rd := roomDocument{
			ID:          int64(room.ID),
			Name:        room.Name,
			Description: room.Description,
			PriceCents:  room.PriceCents,
			MaxGuests:   room.MaxGuests,
			Quantity:    room.Quantity,
			Picture:     room.Picture,
		}
		for _, b := range room.Bookings {
			rd.Bookings = append(rd.Bookings, bookingDocument{
				ID:       b.ID,
				CheckIn:  b.CheckIn.UnixMilli(),
				CheckOut: b.CheckOut.UnixMilli(),
				Status:   string(b.Status),
			})
		}
		for _, blk := range room.Blocks {
			rd.Blocks = append(rd.Blocks, blockDocument{
				ID:     blk.ID,
				Start:  blk.Start.UnixMilli(),
				End:    blk.End.UnixMilli(),
				Reason: blk.Reason,
			})
		}
		for _, rate := range room.Rates {
			rd.Rates = append(rd.Rates, rateDocument{
				ID:         rate.ID,
				Start:      rate.Start.UnixMilli(),
				End:        rate.End.UnixMilli(),
				PriceCents: rate.PriceCents,
			})
		}
		doc.Rooms = append(doc.Rooms, rd)
	}
	return doc
}

func (d propertyDocument) toAggregate() *domainproperty.Property {
	agg := &domainproperty.Property{
		ID:           domainproperty.PropertyID(d.ID),
		Name:         d.Name,
		Description:  d.Description,
		Location:     d.Location,
		CityID:       domainproperty.CityID(d.CityID),
		CategoryID:   domainproperty.CategoryID(d.CategoryID),
		CategoryName: d.CategoryName,
		Tenant:       domainproperty.TenantID(d.TenantID),
		CreatedAt:    timestampToTime(d.CreatedAt),
		UpdatedAt:    timestampToTime(d.UpdatedAt),
	}
	for _, pic := range d.Pictures {
		agg.Pictures = append(agg.Pictures, domainproperty.Picture{ID: pic.ID, Path: pic.Path, IsMain: pic.IsMain})
	}
	for _, rd := range d.Rooms {
		room := domainproperty.Room{
			ID:          domainproperty.RoomID(rd.ID),
			Name:        rd.Name,
			Description: rd.Description,
			PriceCents:  rd.PriceCents,
			MaxGuests:   rd.MaxGuests,
			Quantity:    rd.Quantity,
			Picture:     rd.Picture,
		}
		for _, b := range rd.Bookings {
			room.Bookings = append(room.Bookings, availability.Booking{
				ID:       b.ID,
				CheckIn:  timestampToTime(b.CheckIn),
				CheckOut: timestampToTime(b.CheckOut),
				Status:   availability.BookingStatus(b.Status),
			})
		}
		for _, blk := range rd.Blocks {
			room.Blocks = append(room.Blocks, availability.Block{
				ID:     blk.ID,
				Start:  timestampToTime(blk.Start),
				End:    timestampToTime(blk.End),
				Reason: blk.Reason,
			})
		}
		for _, rate := range rd.Rates {
			room.Rates = append(room.Rates, availability.SeasonRate{
				ID:         rate.ID,
				Start:      timestampToTime(rate.Start),
				End:        timestampToTime(rate.End),
				PriceCents: rate.PriceCents,
			})
		}
		agg.Rooms = append(agg.Rooms, room)
	}
	return agg
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

var (
	_ domainproperty.Repository  = (*PropertyRepository)(nil)
	_ domainproperty.BookingSink = (*PropertyRepository)(nil)
)
