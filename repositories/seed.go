package repositories

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/drjidental/clinic_backend/models"
)

var seedServices = []models.Service{
	{
		Name:                "General Dentistry",
		Slug:                "general-dentistry",
		ShortDescription:    "Comprehensive oral health care and routine checkups.",
		Description:         "Our general dentistry services cover routine checkups, cleanings, fillings, and preventive care to maintain your oral health.",
		Benefits:            "Prevention of cavities and gum disease\nEarly detection of issues\nPersonalized care plans\nLong-term oral health",
		ExperienceHighlight: "Over 20 years of experience in comprehensive dental care.",
		Icon:                "general",
		Order:               1,
	},
	{
		Name:                "Teeth Cleaning & Polishing",
		Slug:                "teeth-cleaning-polishing",
		ShortDescription:    "Professional cleaning to remove plaque and tartar.",
		Description:         "Professional teeth cleaning and polishing to remove plaque, tartar, and surface stains for a healthier, brighter smile.",
		Benefits:            "Prevents gum disease\nRemoves stubborn stains\nFresher breath\nBrighter smile",
		ExperienceHighlight: "Thousands of successful cleanings performed with gentle, effective techniques.",
		Icon:                "cleaning",
		Order:               2,
	},
	{
		Name:                "Root Canal Treatment",
		Slug:                "root-canal-treatment",
		ShortDescription:    "Save infected teeth with comfortable root canal therapy.",
		Description:         "Root canal treatment saves severely infected or damaged teeth by removing the infected pulp and sealing the tooth.",
		Benefits:            "Saves your natural tooth\nRelieves pain\nPrevents spread of infection\nLong-lasting results",
		ExperienceHighlight: "Expert in pain-free root canal procedures with modern techniques.",
		Icon:                "root-canal",
		Order:               3,
	},
	{
		Name:                "Tooth Extraction",
		Slug:                "tooth-extraction",
		ShortDescription:    "Safe and gentle tooth removal when necessary.",
		Description:         "When a tooth cannot be saved, we perform safe, comfortable extractions with proper aftercare guidance.",
		Benefits:            "Relief from severe pain\nPrevents infection spread\nPreparation for implants or dentures\nMinimal discomfort",
		ExperienceHighlight: "Years of experience in simple and surgical extractions.",
		Icon:                "extraction",
		Order:               4,
	},
	{
		Name:                "Dental Implants",
		Slug:                "dental-implants",
		ShortDescription:    "Permanent tooth replacement that looks and feels natural.",
		Description:         "Dental implants provide a permanent solution for missing teeth, restoring function and aesthetics with natural-looking results.",
		Benefits:            "Permanent solution\nNatural look and feel\nPreserves jawbone\nNo slipping or discomfort",
		ExperienceHighlight: "Extensive experience in implant placement and restoration.",
		Icon:                "implants",
		Order:               5,
	},
	{
		Name:                "Braces & Orthodontics",
		Slug:                "braces-orthodontics",
		ShortDescription:    "Straighten teeth and correct bite for a confident smile.",
		Description:         "We offer traditional braces and modern orthodontic options to straighten teeth and correct bite issues for all ages.",
		Benefits:            "Improved alignment\nBetter oral health\nEnhanced confidence\nCustomized treatment plans",
		ExperienceHighlight: "Two decades of creating beautiful, straight smiles.",
		Icon:                "orthodontics",
		Order:               6,
	},
	{
		Name:                "Teeth Whitening",
		Slug:                "teeth-whitening",
		ShortDescription:    "Professional whitening for a brighter, more confident smile.",
		Description:         "Safe and effective professional teeth whitening to remove stains and brighten your smile by several shades.",
		Benefits:            "Dramatic results\nSafe for enamel\nLong-lasting brightness\nBoost in confidence",
		ExperienceHighlight: "Proven whitening protocols for safe, stunning results.",
		Icon:                "whitening",
		Order:               7,
	},
	{
		Name:                "Cosmetic Dentistry",
		Slug:                "cosmetic-dentistry",
		ShortDescription:    "Veneers, bonding, and smile makeovers.",
		Description:         "Transform your smile with veneers, bonding, contouring, and full smile makeovers tailored to your goals.",
		Benefits:            "Customized smile design\nNatural-looking results\nCorrects chips and gaps\nQuick transformations",
		ExperienceHighlight: "20+ years of cosmetic dentistry and smile design.",
		Icon:                "cosmetic",
		Order:               8,
	},
	{
		Name:                "Pediatric Dentistry",
		Slug:                "pediatric-dentistry",
		ShortDescription:    "Gentle, friendly dental care for children.",
		Description:         "We provide a welcoming environment for young patients, focusing on prevention and positive dental experiences.",
		Benefits:            "Child-friendly environment\nPreventive care\nBuilds healthy habits\nReduces dental anxiety",
		ExperienceHighlight: "Dedicated to making children feel comfortable and safe.",
		Icon:                "pediatric",
		Order:               9,
	},
	{
		Name:                "Gum Treatment",
		Slug:                "gum-treatment",
		ShortDescription:    "Prevention and treatment of gum disease.",
		Description:         "Comprehensive gum care including scaling, root planing, and treatment for gingivitis and periodontitis.",
		Benefits:            "Stops gum disease progression\nReduces inflammation\nProtects tooth support\nImproves overall health",
		ExperienceHighlight: "Expert in non-surgical and surgical gum therapy.",
		Icon:                "gum",
		Order:               10,
	},
}

var seedDentist = models.Dentist{
	Name:            "Dr. James Mitchell",
	Title:           "DDS, General & Cosmetic Dentist",
	Bio:             "With over 20 years of experience, Dr. James Mitchell is committed to providing exceptional dental care in a comfortable, patient-centered environment. He believes in building lasting relationships with patients and tailoring treatment to each individual's needs.",
	ExperienceYears: 20,
	Philosophy:      "Our philosophy is simple: put the patient first. We combine advanced technology with a gentle, compassionate approach to ensure every visit is positive. From preventive care to complex procedures, we are here to support your oral health journey.",
	Certifications:  "Doctor of Dental Surgery (DDS)\nMember, American Dental Association\nCertified in Advanced Cosmetic Dentistry\nContinuing Education in Implantology",
}

// SeedCatalog populates the dentist profile and service catalog when they
// are missing. Safe to run on every start; existing records are kept.
func SeedCatalog(client *mongo.Client, dbName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := client.Database(dbName)
	now := time.Now()

	dentists := db.Collection("dentists")
	count, err := dentists.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Printf("Seed: failed to count dentists: %v", err)
		return
	}
	if count == 0 {
		dentist := seedDentist
		dentist.CreatedAt = now
		dentist.UpdatedAt = now
		if _, err := dentists.InsertOne(ctx, dentist); err != nil {
			log.Printf("Seed: failed to create dentist profile: %v", err)
		} else {
			log.Println("Seed: created default dentist profile")
		}
	}

	services := db.Collection("services")
	created := 0
	for _, svc := range seedServices {
		svc.IsActive = true
		svc.CreatedAt = now
		svc.UpdatedAt = now
		// Upsert keyed on slug so reruns never duplicate a service.
		result, err := services.UpdateOne(
			ctx,
			bson.M{"slug": svc.Slug},
			bson.M{"$setOnInsert": svc},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			log.Printf("Seed: failed to seed service %s: %v", svc.Slug, err)
			continue
		}
		if result.UpsertedCount > 0 {
			created++
		}
	}
	log.Printf("Seed: services %d new, %d already existed", created, len(seedServices)-created)
}
