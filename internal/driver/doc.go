// Package driver orchestrates formatting runs over files and directories.
//
// Назначение:
//   - собрать список *.rn файлов из путей командной строки;
//   - прогнать каждый файл через internal/format, параллельно;
//   - записать результат на диск / отдать в stdout / сравнить (--check);
//   - кэшировать готовый вывод по хэшу (конфигурация, исходник).
//
// Не делает:
//   - разбора флагов (это cmd/runefmt);
//   - рендеринга диагностик (internal/diagfmt).
//
// Зависимости: format, config, diag, source; msgpack для дискового кэша,
// errgroup для параллельного прогона.
package driver
