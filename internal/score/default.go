package score

import (
	"database/sql"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

type DefaultScorer struct {
	// Path overrides the database location, for tests
	Path string

	db *sql.DB
}

func (s *DefaultScorer) Init() error {
	path := s.Path
	if path == "" {
		path = "./scores.db"
	}
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return err
	}

	initStatement := `
	create table if not exists scores
	  (
		  id integer not null primary key,
		  sum text,
		  difficulty integer,
		  score integer,
		  streak integer,
		  name text,
		  rate real
	  );
	`
	_, err = db.Exec(initStatement)
	if nil != err {
		return err
	}

	s.db = db
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

func (s *DefaultScorer) Save(sum string, difficulty int, r Record) {
	_, err := s.db.Exec(
		"insert into scores(sum, difficulty, score, streak, name, rate) values(?, ?, ?, ?, ?, ?)",
		sum, difficulty, r.Score, r.Streak, r.Name, r.Rate)
	if nil != err {
		log.Println("unable to save score", err)
	}
}

func (s *DefaultScorer) Load(sum string, difficulty int) []Record {
	records := []Record{}
	rows, err := s.db.Query(
		"select score, streak, name, rate from scores where sum = ? and difficulty = ? order by score desc",
		sum, difficulty)
	if nil != err && err != sql.ErrNoRows {
		log.Println("unable to load scores", err)
		return records
	}
	defer rows.Close()
	for rows.Next() {
		var r Record
		rows.Scan(&r.Score, &r.Streak, &r.Name, &r.Rate)
		records = append(records, r)
	}
	return records
}
