package model

import "time"

// PolicyHolder represents an insured person as stored in the
// `policyholders` table. Each field corresponds to a column in the
// database. The birth_id column carries a UNIQUE constraint and acts
// as the natural key of the record; the numeric ID remains the
// primary key used in foreign keys and URLs.
//
// Fields:
//  ID          – primary key identifier of the policyholder.
//  Name        – first name (stored title-cased).
//  Lastname    – last name (stored title-cased).
//  BirthID     – birth identification number, globally unique.
//  CellPhoneNo – contact phone number.
//  Email       – contact email (must contain "@seznam.cz").
//  Street      – address: street name.
//  StreetNo    – address: street/orientation number.
//  City        – address: city.
//  Country     – address: country.
//  ZipCode     – address: postal code.
//  Photo       – stored filename of the uploaded photo (nil when absent).
//  Created     – timestamp of creation, set once at insert.
//  Updated     – timestamp of last update, bumped on every mutation.
type PolicyHolder struct {
	ID          uint64    // policyholders.id
	Name        string    // policyholders.name
	Lastname    string    // policyholders.lastname
	BirthID     string    // policyholders.birth_id
	CellPhoneNo string    // policyholders.cell_phone_no
	Email       string    // policyholders.email
	Street      string    // policyholders.street
	StreetNo    string    // policyholders.street_no
	City        string    // policyholders.city
	Country     string    // policyholders.country
	ZipCode     string    // policyholders.zip_code
	Photo       *string   // policyholders.photo (nullable)
	Created     time.Time // policyholders.created
	Updated     time.Time // policyholders.updated
}
