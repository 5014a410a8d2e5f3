package dialect

import "testing"

func BenchmarkRebind(b *testing.B) {
	const query = `SELECT "user".id FROM "user" WHERE "user".age > ? AND "user".status = ? LIMIT ? OFFSET ?`
	for _, d := range []string{SQLite, MySQL, Postgres} {
		b.Run(d, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				Rebind(d, query)
			}
		})
	}
}
