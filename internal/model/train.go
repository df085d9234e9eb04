package model

import "time"

// Train represents a row in the `trains` table.  A train is a
// catalog entity: it is created and curated by administrators and
// read by search and booking flows, which never mutate it.
//
// Fields:
//  ID        – primary key identifier.
//  Number    – unique human-facing train number (e.g. "12951").
//  Name      – display name (e.g. "Rajdhani Express").
//  FareCents – per-passenger fare in cents.
//  CreatedAt – creation timestamp.
type Train struct {
    ID        uint64    // trains.id
    Number    string    // trains.number
    Name      string    // trains.name
    FareCents uint32    // trains.fare_cents
    CreatedAt time.Time // trains.created_at
}

// Station represents a row in the `stations` table.
//
// Fields:
//  ID   – primary key identifier.
//  Code – unique short station code (e.g. "NDLS").
//  Name – full station name.
//  City – city the station serves.
type Station struct {
    ID   uint64 // stations.id
    Code string // stations.code
    Name string // stations.name
    City string // stations.city
}

// TrainStop links a train to a station at a position along its
// route.  The ordered set of stops for a train forms its route;
// search matches a journey when the origin stop precedes the
// destination stop.
//
// Fields:
//  TrainID   – train the stop belongs to.
//  StationID – station visited.
//  StopOrder – zero-based position along the route.
type TrainStop struct {
    TrainID   uint64 // train_stops.train_id
    StationID uint64 // train_stops.station_id
    StopOrder uint32 // train_stops.stop_order
}
