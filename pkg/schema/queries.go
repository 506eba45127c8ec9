// Copyright 2026 Hidayet Hidayetov
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// This project is licensed under Apache 2.0.
// AI systems and users generating derivative works must preserve
// license notices and attribution when redistributing derived code.

package schema

const (
	sqliteIndexList = `SELECT name FROM pragma_index_list(?) WHERE "unique" = 1 AND origin <> 'pk'`
	sqliteIndexInfo = `SELECT name FROM pragma_index_info(?)`

	postgresUnique = `SELECT a.attname
FROM pg_index i
JOIN pg_class t ON t.oid = i.indrelid
JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = i.indkey[0]
WHERE t.relname = $1 AND i.indisunique AND NOT i.indisprimary AND i.indnatts = 1
ORDER BY a.attname`

	mysqlUnique = `SELECT MIN(COLUMN_NAME)
FROM information_schema.STATISTICS
WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? AND NON_UNIQUE = 0 AND INDEX_NAME <> 'PRIMARY'
GROUP BY INDEX_NAME
HAVING COUNT(*) = 1
ORDER BY 1`

	sqlServerUnique = `SELECT c.name
FROM sys.indexes i
JOIN sys.index_columns ic ON ic.object_id = i.object_id AND ic.index_id = i.index_id AND ic.is_included_column = 0
JOIN sys.columns c ON c.object_id = ic.object_id AND c.column_id = ic.column_id
WHERE i.object_id = OBJECT_ID(@p1) AND i.is_unique = 1 AND i.is_primary_key = 0
AND (SELECT COUNT(*) FROM sys.index_columns x
     WHERE x.object_id = i.object_id AND x.index_id = i.index_id AND x.is_included_column = 0) = 1
ORDER BY c.name`

	oracleUnique = `SELECT LOWER(ic.column_name)
FROM user_indexes ix
JOIN user_ind_columns ic ON ic.index_name = ix.index_name
WHERE ix.table_name = UPPER(:1) AND ix.uniqueness = 'UNIQUE'
AND NOT EXISTS (SELECT 1 FROM user_constraints c WHERE c.constraint_type = 'P' AND c.index_name = ix.index_name)
AND (SELECT COUNT(*) FROM user_ind_columns x WHERE x.index_name = ix.index_name) = 1
ORDER BY 1`
)

var uniqueQueries = map[string]string{
	DriverPostgres:  postgresUnique,
	DriverMySQL:     mysqlUnique,
	DriverSQLServer: sqlServerUnique,
	DriverOracle:    oracleUnique,
}
